// internal/services/reservation_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
)

type ReservationServiceTestSuite struct {
	suite.Suite
	service *ReservationService
	product *models.Product
}

func (suite *ReservationServiceTestSuite) SetupTest() {
	db := setupTestDB(suite.T())
	suite.service = NewReservationService(db)
	suite.product = createTestProduct(suite.T(), db, "Clio V", 50, 2)
}

func (suite *ReservationServiceTestSuite) newRequest(depart, retour string) *CreateReservationRequest {
	return &CreateReservationRequest{
		ProductID:  suite.product.ID,
		DateDepart: depart,
		DateRetour: retour,
		Nom:        "Martin",
		Prenom:     "Sophie",
		Telephone:  "0612345678",
		Email:      "sophie.martin@example.com",
		LieuPrise:  "Agence Casablanca",
		LieuRetour: "Agence Casablanca",
	}
}

func futureDate(daysFromNow int) string {
	return time.Now().UTC().AddDate(0, 0, daysFromNow).Format("2006-01-02")
}

func (suite *ReservationServiceTestSuite) TestCreateReservationComputesPriceAndDays() {
	reservation, err := suite.service.CreateReservation(suite.newRequest(futureDate(10), futureDate(14)))

	suite.Require().NoError(err)
	suite.Equal(4, reservation.NombreJours)
	suite.Equal(200.0, reservation.PrixTotal)
	suite.Equal(models.ReservationStatusPending, reservation.Statut)
	suite.Require().NotNil(reservation.Product)
	suite.Equal("Clio V", reservation.Product.Name)
}

func (suite *ReservationServiceTestSuite) TestCreateReservationRejectsPastDeparture() {
	req := suite.newRequest(futureDate(-2), futureDate(3))

	_, err := suite.service.CreateReservation(req)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "past")
}

func (suite *ReservationServiceTestSuite) TestCreateReservationRejectsInvertedRange() {
	req := suite.newRequest(futureDate(10), futureDate(10))

	_, err := suite.service.CreateReservation(req)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "return date must be after departure date")
}

func (suite *ReservationServiceTestSuite) TestCreateReservationRejectsUnknownProduct() {
	req := suite.newRequest(futureDate(10), futureDate(12))
	req.ProductID = 9999

	_, err := suite.service.CreateReservation(req)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "product not found")
}

func (suite *ReservationServiceTestSuite) TestCapacityExhaustedOverlap() {
	// Two units; two bookings on the same window fill them.
	_, err := suite.service.CreateReservation(suite.newRequest(futureDate(10), futureDate(14)))
	suite.Require().NoError(err)
	_, err = suite.service.CreateReservation(suite.newRequest(futureDate(10), futureDate(14)))
	suite.Require().NoError(err)

	_, err = suite.service.CreateReservation(suite.newRequest(futureDate(11), futureDate(13)))
	suite.Require().Error(err)
	suite.Contains(err.Error(), "available")

	// Back-to-back is allowed: a return day frees the vehicle.
	_, err = suite.service.CreateReservation(suite.newRequest(futureDate(14), futureDate(18)))
	suite.NoError(err)
}

func (suite *ReservationServiceTestSuite) TestCancelledBookingFreesCapacity() {
	first, err := suite.service.CreateReservation(suite.newRequest(futureDate(10), futureDate(14)))
	suite.Require().NoError(err)
	_, err = suite.service.CreateReservation(suite.newRequest(futureDate(10), futureDate(14)))
	suite.Require().NoError(err)

	_, err = suite.service.UpdateStatus(first.ID, string(models.ReservationStatusCancelled))
	suite.Require().NoError(err)

	_, err = suite.service.CreateReservation(suite.newRequest(futureDate(10), futureDate(14)))
	suite.NoError(err)
}

func (suite *ReservationServiceTestSuite) TestCheckAvailability() {
	_, err := suite.service.CreateReservation(suite.newRequest(futureDate(10), futureDate(14)))
	suite.Require().NoError(err)

	result, err := suite.service.CheckAvailability(suite.product.ID, futureDate(12), futureDate(16))
	suite.Require().NoError(err)
	suite.True(result.Disponible)
	suite.Equal(1, result.VehiculesDisponibles)
	suite.Equal(2, result.QuantiteTotal)

	// A disjoint window sees full capacity.
	result, err = suite.service.CheckAvailability(suite.product.ID, futureDate(20), futureDate(22))
	suite.Require().NoError(err)
	suite.Equal(2, result.VehiculesDisponibles)
}

func (suite *ReservationServiceTestSuite) TestUpdateStatusFollowsLifecycle() {
	reservation, err := suite.service.CreateReservation(suite.newRequest(futureDate(10), futureDate(14)))
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateStatus(reservation.ID, string(models.ReservationStatusConfirmed))
	suite.Require().NoError(err)
	suite.Equal(models.ReservationStatusConfirmed, updated.Statut)
	suite.NotNil(updated.DateModification)

	updated, err = suite.service.UpdateStatus(reservation.ID, string(models.ReservationStatusInProgress))
	suite.Require().NoError(err)

	updated, err = suite.service.UpdateStatus(reservation.ID, string(models.ReservationStatusCompleted))
	suite.Require().NoError(err)
	suite.Equal(models.ReservationStatusCompleted, updated.Statut)
}

func (suite *ReservationServiceTestSuite) TestUpdateStatusRejectsUnknownStatus() {
	reservation, err := suite.service.CreateReservation(suite.newRequest(futureDate(10), futureDate(14)))
	suite.Require().NoError(err)

	_, err = suite.service.UpdateStatus(reservation.ID, "INCONNU")
	suite.Require().Error(err)
	suite.Contains(err.Error(), "invalid reservation status")

	stored, err := suite.service.GetReservation(reservation.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ReservationStatusPending, stored.Statut)
}

func (suite *ReservationServiceTestSuite) TestUpdateStatusRejectsDisallowedTransition() {
	reservation, err := suite.service.CreateReservation(suite.newRequest(futureDate(10), futureDate(14)))
	suite.Require().NoError(err)

	// PENDING cannot jump straight to COMPLETED.
	_, err = suite.service.UpdateStatus(reservation.ID, string(models.ReservationStatusCompleted))
	suite.Require().Error(err)
	suite.Contains(err.Error(), "transition")

	stored, err := suite.service.GetReservation(reservation.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ReservationStatusPending, stored.Statut)
}

func (suite *ReservationServiceTestSuite) TestTerminalStatusIsFrozen() {
	reservation, err := suite.service.CreateReservation(suite.newRequest(futureDate(10), futureDate(14)))
	suite.Require().NoError(err)

	_, err = suite.service.UpdateStatus(reservation.ID, string(models.ReservationStatusCancelled))
	suite.Require().NoError(err)

	_, err = suite.service.UpdateStatus(reservation.ID, string(models.ReservationStatusConfirmed))
	suite.Require().Error(err)
	suite.Contains(err.Error(), "transition")
}

func (suite *ReservationServiceTestSuite) TestDeleteReservationNotFound() {
	err := suite.service.DeleteReservation(42)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "reservation not found")
}

func (suite *ReservationServiceTestSuite) TestGetStatsExcludesCancelledRevenue() {
	first, err := suite.service.CreateReservation(suite.newRequest(futureDate(10), futureDate(14)))
	suite.Require().NoError(err)
	_, err = suite.service.CreateReservation(suite.newRequest(futureDate(20), futureDate(22)))
	suite.Require().NoError(err)

	_, err = suite.service.UpdateStatus(first.ID, string(models.ReservationStatusCancelled))
	suite.Require().NoError(err)

	stats, err := suite.service.GetStats()
	suite.Require().NoError(err)
	suite.Equal(int64(2), stats.Total)
	suite.Equal(int64(1), stats.ParStatut[string(models.ReservationStatusCancelled)])
	suite.Equal(100.0, stats.ChiffreTotal)
}

func (suite *ReservationServiceTestSuite) TestSearchReservationsByEmailAndStatus() {
	_, err := suite.service.CreateReservation(suite.newRequest(futureDate(10), futureDate(14)))
	suite.Require().NoError(err)

	other := suite.newRequest(futureDate(20), futureDate(22))
	other.Email = "autre@example.com"
	_, err = suite.service.CreateReservation(other)
	suite.Require().NoError(err)

	params := ReservationSearchParams{Email: "sophie"}
	params.Page = 1
	params.Limit = 10

	results, total, err := suite.service.SearchReservations(params)
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Len(results, 1)
	suite.Equal("sophie.martin@example.com", results[0].Email)
}

func (suite *ReservationServiceTestSuite) TestGetRevenueBetweenFiltersByDeparture() {
	_, err := suite.service.CreateReservation(suite.newRequest(futureDate(10), futureDate(14)))
	suite.Require().NoError(err)
	_, err = suite.service.CreateReservation(suite.newRequest(futureDate(40), futureDate(42)))
	suite.Require().NoError(err)

	revenue, err := suite.service.GetRevenueBetween(futureDate(0), futureDate(30))
	suite.Require().NoError(err)
	suite.Equal(200.0, revenue)

	_, err = suite.service.GetRevenueBetween(futureDate(30), futureDate(0))
	suite.Require().Error(err)
}

func TestReservationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationServiceTestSuite))
}
