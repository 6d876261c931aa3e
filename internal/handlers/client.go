// internal/handlers/client.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/i18n"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/services"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// GET /clients
func (h *ClientHandler) GetClients(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	clients, total, err := h.clientService.SearchClients(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(clients, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /clients/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyClientNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, client)
}

// POST /clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.CreateClient(&req)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyClientExists))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, client)
}

// DELETE /clients/:id
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyClientNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// GET /clients/:cni/payments
func (h *ClientHandler) GetClientPayments(c *gin.Context) {
	cni := c.Param("cni")
	if cni == "" {
		utils.BadRequestResponse(c, "CNI is required", nil)
		return
	}

	payments, err := h.clientService.GetPaymentsByClientCNI(cni)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyClientNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, payments)
}

// GET /paiements
func (h *ClientHandler) GetPayments(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	payments, total, err := h.clientService.ListPayments(
		c.Query("typePaiement"),
		c.Query("status"),
		params,
	)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(payments, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /paiements/:id
func (h *ClientHandler) GetPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.clientService.GetPayment(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyPaymentNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, payment)
}

// POST /paiements (multipart, PDF receipt under "file")
func (h *ClientHandler) CreatePayment(c *gin.Context) {
	var req services.CreatePaymentRequest
	if !bindForm(c, &req) {
		return
	}

	file, header, fileErr := c.Request.FormFile("file")
	if fileErr == nil {
		defer file.Close()
	} else {
		file, header = nil, nil
	}

	payment, err := h.clientService.CreatePayment(&req, file, header)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, i18n.KeyClientNotFound)
		case strings.Contains(err.Error(), "invalid"):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.CreatedResponse(c, payment)
}

// PUT /paiements/:id/status
func (h *ClientHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdatePaymentStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.clientService.UpdatePaymentStatus(id, &req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, i18n.KeyPaymentNotFound)
		case strings.Contains(err.Error(), "invalid"):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, payment)
}

// GET /paiements/:id/receipt
func (h *ClientHandler) GetPaymentReceipt(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.clientService.GetReceiptURL(id)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, i18n.KeyPaymentNotFound)
		case strings.Contains(err.Error(), "no stored receipt"):
			utils.NotFoundResponse(c, err.Error())
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"url": url})
}
