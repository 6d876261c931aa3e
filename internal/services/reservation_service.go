// internal/services/reservation_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

type ReservationService struct {
	db *gorm.DB
}

type CreateReservationRequest struct {
	ProductID  uint   `json:"produitId" validate:"required"`
	DateDepart string `json:"dateDepart" validate:"required"`
	DateRetour string `json:"dateRetour" validate:"required"`
	Nom        string `json:"nom" validate:"required,min=2,max=100"`
	Prenom     string `json:"prenom" validate:"required,min=2,max=100"`
	Telephone  string `json:"telephone" validate:"required,min=6,max=30"`
	Email      string `json:"email" validate:"required,email"`
	LieuPrise  string `json:"lieuPrise" validate:"max=255"`
	LieuRetour string `json:"lieuRetour" validate:"max=255"`
}

type UpdateReservationStatusRequest struct {
	Statut string `json:"statut" validate:"required"`
}

type ReservationSearchParams struct {
	utils.PaginationParams
	Email  string
	Statut string
}

type AvailabilityResult struct {
	Disponible           bool `json:"disponible"`
	VehiculesDisponibles int  `json:"vehiculesDisponibles"`
	QuantiteTotal        int  `json:"quantiteTotal"`
}

type ReservationStats struct {
	Total        int64            `json:"total"`
	ParStatut    map[string]int64 `json:"parStatut"`
	ChiffreTotal float64          `json:"chiffreTotal"`
}

const dateLayout = "2006-01-02"

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{db: db}
}

// CreateReservation books a product over [dateDepart, dateRetour).
// The capacity check and the insert run in one transaction holding a
// row lock on the product, so two concurrent requests cannot both take
// the last unit.
func (s *ReservationService) CreateReservation(req *CreateReservationRequest) (*models.Reservation, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	dateDepart, dateRetour, err := parseDateRange(req.DateDepart, req.DateRetour)
	if err != nil {
		return nil, err
	}

	today := truncateToDay(time.Now().UTC())
	if dateDepart.Before(today) {
		return nil, errors.New("departure date cannot be in the past")
	}

	days := int(dateRetour.Sub(dateDepart).Hours() / 24)

	var reservation *models.Reservation

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the product row for the duration of the check + insert.
		// SQLite has no FOR UPDATE; its single-writer transactions give
		// the same guarantee.
		productQuery := tx
		if tx.Dialector.Name() == "postgres" {
			productQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var product models.Product
		if err := productQuery.First(&product, req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("product not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		conflicts, err := countConflicts(tx, req.ProductID, dateDepart, dateRetour)
		if err != nil {
			return err
		}

		if conflicts >= int64(product.Quantity) {
			return errors.New("no vehicle available for the selected dates")
		}

		reservation = &models.Reservation{
			ProductID:   req.ProductID,
			DateDepart:  dateDepart,
			DateRetour:  dateRetour,
			Nom:         req.Nom,
			Prenom:      req.Prenom,
			Telephone:   req.Telephone,
			Email:       req.Email,
			LieuPrise:   req.LieuPrise,
			LieuRetour:  req.LieuRetour,
			PrixTotal:   float64(days) * product.Price,
			NombreJours: days,
			Statut:      models.ReservationStatusPending,
		}

		if err := tx.Create(reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Product").First(reservation, reservation.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload reservation: %w", err)
	}

	return reservation, nil
}

// CheckAvailability reports how many units remain free over the range.
func (s *ReservationService) CheckAvailability(productID uint, dateDepartStr, dateRetourStr string) (*AvailabilityResult, error) {
	dateDepart, dateRetour, err := parseDateRange(dateDepartStr, dateRetourStr)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	conflicts, err := countConflicts(s.db, productID, dateDepart, dateRetour)
	if err != nil {
		return nil, err
	}

	available := product.Quantity - int(conflicts)
	if available < 0 {
		available = 0
	}

	return &AvailabilityResult{
		Disponible:           available > 0,
		VehiculesDisponibles: available,
		QuantiteTotal:        product.Quantity,
	}, nil
}

func (s *ReservationService) GetReservation(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.Preload("Product").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reservation not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &reservation, nil
}

func (s *ReservationService) GetReservationByTransactionID(transactionID string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.Preload("Product").
		Where("transaction_id = ?", transactionID).
		First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reservation not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &reservation, nil
}

// UpdateStatus moves a reservation through its lifecycle. The stored
// status is left untouched when the target is unknown or the
// transition is not allowed.
func (s *ReservationService) UpdateStatus(id uint, statut string) (*models.Reservation, error) {
	newStatus := models.ReservationStatus(statut)
	if !newStatus.IsValid() {
		return nil, errors.New("invalid reservation status")
	}

	reservation, err := s.GetReservation(id)
	if err != nil {
		return nil, err
	}

	if !reservation.Statut.CanTransitionTo(newStatus) {
		return nil, errors.New("status transition not allowed")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"statut":            newStatus,
		"date_modification": &now,
	}

	if err := s.db.Model(reservation).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}

	reservation.Statut = newStatus
	reservation.DateModification = &now

	return reservation, nil
}

func (s *ReservationService) SearchReservations(params ReservationSearchParams) ([]models.Reservation, int64, error) {
	query := s.db.Model(&models.Reservation{}).Preload("Product")

	if params.Email != "" {
		searchTerm := "%" + strings.ToLower(params.Email) + "%"
		query = query.Where("LOWER(email) LIKE ?", searchTerm)
	}

	if params.Statut != "" {
		query = query.Where("statut = ?", params.Statut)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	// Newest bookings first
	allowedSortFields := []string{"date_creation", "date_depart", "date_retour", "prix_total", "statut"}
	if params.Sort == "created_at" {
		params.Sort = "date_creation"
	}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reservations: %w", err)
	}

	return reservations, total, nil
}

func (s *ReservationService) GetReservationsByEmail(email string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.db.Preload("Product").
		Where("email = ?", email).
		Order("date_creation DESC").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}

	return reservations, nil
}

func (s *ReservationService) GetReservationsByProduct(productID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.db.
		Where("product_id = ?", productID).
		Order("date_depart ASC").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}

	return reservations, nil
}

// GetUpcomingReservations lists confirmed bookings starting within the
// next n days.
func (s *ReservationService) GetUpcomingReservations(days int) ([]models.Reservation, error) {
	today := truncateToDay(time.Now().UTC())
	horizon := today.AddDate(0, 0, days)

	var reservations []models.Reservation
	if err := s.db.Preload("Product").
		Where("statut = ? AND date_depart >= ? AND date_depart < ?",
			models.ReservationStatusConfirmed, today, horizon).
		Order("date_depart ASC").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming reservations: %w", err)
	}

	return reservations, nil
}

func (s *ReservationService) DeleteReservation(id uint) error {
	result := s.db.Delete(&models.Reservation{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("reservation not found")
	}

	return nil
}

// GetStats aggregates booking counts per status and the revenue of
// non-cancelled reservations.
func (s *ReservationService) GetStats() (*ReservationStats, error) {
	stats := &ReservationStats{ParStatut: make(map[string]int64)}

	if err := s.db.Model(&models.Reservation{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reservations: %w", err)
	}

	var rows []struct {
		Statut string
		Count  int64
	}
	if err := s.db.Model(&models.Reservation{}).
		Select("statut, COUNT(*) as count").
		Group("statut").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate statuses: %w", err)
	}
	for _, row := range rows {
		stats.ParStatut[row.Statut] = row.Count
	}

	if err := s.db.Model(&models.Reservation{}).
		Where("statut <> ?", models.ReservationStatusCancelled).
		Select("COALESCE(SUM(prix_total), 0)").
		Scan(&stats.ChiffreTotal).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return stats, nil
}

// GetRevenueBetween sums the revenue of non-cancelled reservations
// departing in [start, end).
func (s *ReservationService) GetRevenueBetween(startStr, endStr string) (float64, error) {
	start, end, err := parseDateRange(startStr, endStr)
	if err != nil {
		return 0, err
	}

	var revenue float64
	if err := s.db.Model(&models.Reservation{}).
		Where("statut <> ? AND date_depart >= ? AND date_depart < ?",
			models.ReservationStatusCancelled, start, end).
		Select("COALESCE(SUM(prix_total), 0)").
		Scan(&revenue).Error; err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return revenue, nil
}

// Helper methods

func countConflicts(tx *gorm.DB, productID uint, dateDepart, dateRetour time.Time) (int64, error) {
	var conflicts int64
	if err := tx.Model(&models.Reservation{}).
		Where("product_id = ? AND statut IN ? AND date_depart < ? AND date_retour > ?",
			productID, models.ActiveReservationStatuses(), dateRetour, dateDepart).
		Count(&conflicts).Error; err != nil {
		return 0, fmt.Errorf("failed to count conflicting reservations: %w", err)
	}

	return conflicts, nil
}

func parseDateRange(departStr, retourStr string) (time.Time, time.Time, error) {
	dateDepart, err := time.Parse(dateLayout, departStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid departure date format, expected YYYY-MM-DD")
	}

	dateRetour, err := time.Parse(dateLayout, retourStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid return date format, expected YYYY-MM-DD")
	}

	if !dateRetour.After(dateDepart) {
		return time.Time{}, time.Time{}, errors.New("return date must be after departure date")
	}

	return dateDepart, dateRetour, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
