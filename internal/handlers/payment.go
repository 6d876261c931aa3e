// internal/handlers/payment.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/i18n"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/services"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// POST /payments/initiate-paypal
func (h *PaymentHandler) InitiatePayPalPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.InitiatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.paymentService.InitiatePayPalPayment(&req)
	if err != nil {
		writePaymentError(c, lang, err)
		return
	}

	utils.CreatedResponse(c, resp)
}

// POST /payments/capture-paypal/:orderId
func (h *PaymentHandler) CapturePayPalPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	orderID := c.Param("orderId")
	if orderID == "" {
		utils.BadRequestResponse(c, "Order ID is required", nil)
		return
	}

	reservation, err := h.paymentService.CapturePayPalPayment(orderID)
	if err != nil {
		writePaymentError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyPaymentSuccess),
		"reservation": reservation,
	})
}

// GET /payments/status-paypal/:orderId
func (h *PaymentHandler) GetPayPalOrderStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	orderID := c.Param("orderId")
	if orderID == "" {
		utils.BadRequestResponse(c, "Order ID is required", nil)
		return
	}

	status, err := h.paymentService.GetPayPalOrderStatus(orderID)
	if err != nil {
		writePaymentError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"orderId": orderID,
		"status":  status,
	})
}

// POST /payments/cancel-paypal
func (h *PaymentHandler) CancelPayPalPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CancelPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	reservation, err := h.paymentService.CancelPayPalPayment(&req)
	if err != nil {
		writePaymentError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyPaymentCancelled),
		"reservation": reservation,
	})
}

// POST /payments/intent/:reservationId
func (h *PaymentHandler) CreateCardPaymentIntent(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	reservationID, ok := parseIDParam(c, "reservationId")
	if !ok {
		return
	}

	resp, err := h.paymentService.CreateCardPaymentIntent(reservationID)
	if err != nil {
		writePaymentError(c, lang, err)
		return
	}

	utils.CreatedResponse(c, resp)
}

// POST /payments/confirm
func (h *PaymentHandler) ConfirmCardPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ConfirmCardPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	reservation, err := h.paymentService.ConfirmCardPayment(&req)
	if err != nil {
		writePaymentError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyPaymentSuccess),
		"reservation": reservation,
	})
}

// POST /payments/refund/:reservationId
func (h *PaymentHandler) RefundCardPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	reservationID, ok := parseIDParam(c, "reservationId")
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	c.ShouldBindJSON(&body)

	if err := h.paymentService.RefundCardPayment(reservationID, body.Reason); err != nil {
		writePaymentError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPaymentCancelled),
	})
}

// writePaymentError maps payment service errors onto the shared
// response envelope.
func writePaymentError(c *gin.Context, lang string, err error) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		utils.NotFoundResponse(c, i18n.KeyReservationNotFound)
	case strings.Contains(msg, "gateway"):
		utils.BadGatewayResponse(c, i18n.T(lang, i18n.KeyPaymentGatewayError))
	case strings.Contains(msg, "amount"):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPaymentInvalidAmount), nil)
	case strings.Contains(msg, "awaiting payment"),
		strings.Contains(msg, "capture returned status"),
		strings.Contains(msg, "refund"):
		utils.ConflictResponse(c, msg)
	default:
		utils.BadRequestResponse(c, msg, nil)
	}
}
