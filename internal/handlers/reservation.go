// internal/handlers/reservation.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/i18n"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/services"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

type ReservationHandler struct {
	reservationService *services.ReservationService
}

func NewReservationHandler(reservationService *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
	}
}

// POST /reservations
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateReservationRequest
	if !bindJSON(c, &req) {
		return
	}

	reservation, err := h.reservationService.CreateReservation(&req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		case strings.Contains(err.Error(), "available"):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyReservationUnavailable))
		case strings.Contains(err.Error(), "past"):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyReservationPastDate), nil)
		case strings.Contains(err.Error(), "date"):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyReservationInvalidDates), err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyReservationCreated),
		"reservation": reservation,
	})
}

// GET /reservations
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.ReservationSearchParams{
		PaginationParams: params,
		Email:            c.Query("email"),
		Statut:           c.Query("statut"),
	}

	reservations, total, err := h.reservationService.SearchReservations(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(reservations, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /reservations/:id
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.reservationService.GetReservation(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyReservationNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, reservation)
}

// GET /reservations/disponibilite/:produitId?dateDepart=...&dateRetour=...
func (h *ReservationHandler) CheckAvailability(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	productID, ok := parseIDParam(c, "produitId")
	if !ok {
		return
	}

	dateDepart := c.Query("dateDepart")
	dateRetour := c.Query("dateRetour")
	if dateDepart == "" || dateRetour == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyReservationInvalidDates), "dateDepart and dateRetour are required")
		return
	}

	result, err := h.reservationService.CheckAvailability(productID, dateDepart, dateRetour)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		case strings.Contains(err.Error(), "date"):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyReservationInvalidDates), err.Error())
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, result)
}

// PUT /reservations/:id/statut
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateReservationStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	reservation, err := h.reservationService.UpdateStatus(id, req.Statut)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, i18n.KeyReservationNotFound)
		case strings.Contains(err.Error(), "transition"):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyReservationInvalidTransition))
		case strings.Contains(err.Error(), "invalid"):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyReservationInvalidStatus), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyReservationUpdated),
		"reservation": reservation,
	})
}

// GET /reservations/client/:email
func (h *ReservationHandler) GetReservationsByEmail(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		utils.BadRequestResponse(c, "Email is required", nil)
		return
	}

	reservations, err := h.reservationService.GetReservationsByEmail(email)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, reservations)
}

// GET /reservations/produit/:produitId
func (h *ReservationHandler) GetReservationsByProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "produitId")
	if !ok {
		return
	}

	reservations, err := h.reservationService.GetReservationsByProduct(productID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, reservations)
}

// GET /reservations/a-venir?jours=7
func (h *ReservationHandler) GetUpcomingReservations(c *gin.Context) {
	daysStr := c.DefaultQuery("jours", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days < 1 || days > 90 {
		days = 7
	}

	reservations, err := h.reservationService.GetUpcomingReservations(days)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, reservations)
}

// GET /reservations/revenus?debut=YYYY-MM-DD&fin=YYYY-MM-DD
func (h *ReservationHandler) GetRevenue(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	debut := c.Query("debut")
	fin := c.Query("fin")
	if debut == "" || fin == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyReservationInvalidDates), "debut and fin are required")
		return
	}

	revenue, err := h.reservationService.GetRevenueBetween(debut, fin)
	if err != nil {
		if strings.Contains(err.Error(), "date") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyReservationInvalidDates), err.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"debut":   debut,
		"fin":     fin,
		"revenus": revenue,
	})
}

// GET /reservations/stats
func (h *ReservationHandler) GetStats(c *gin.Context) {
	stats, err := h.reservationService.GetStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, stats)
}

// DELETE /reservations/:id
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.reservationService.DeleteReservation(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyReservationNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReservationDeleted),
	})
}
