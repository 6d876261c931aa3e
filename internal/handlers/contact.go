// internal/handlers/contact.go
package handlers

import (
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/i18n"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/services"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// POST /contact/send-email (multipart, attachments under "files")
func (h *ContactHandler) SendEmail(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.SubmitContactRequest
	if !bindForm(c, &req) {
		return
	}
	req.UserAgent = c.GetHeader("User-Agent")

	var attachments []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		attachments = form.File["files"]
	}

	message, err := h.contactService.SubmitContact(&req, attachments)
	if err != nil {
		if strings.Contains(err.Error(), "limit") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileTooLarge), err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyContactReceived),
		"contact": message,
	})
}

// GET /contact/messages
func (h *ContactHandler) GetMessages(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.ContactSearchParams{
		PaginationParams: params,
		Status:           c.Query("status"),
	}

	messages, total, err := h.contactService.SearchMessages(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(messages, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /contact/messages/:id
func (h *ContactHandler) GetMessage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	message, err := h.contactService.GetMessage(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyContactNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, message)
}

// PUT /contact/messages/:id/status
func (h *ContactHandler) UpdateMessageStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateContactStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	message, err := h.contactService.UpdateStatus(id, &req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, i18n.KeyContactNotFound)
		case strings.Contains(err.Error(), "invalid"):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, message)
}

// DELETE /contact/messages/:id
func (h *ContactHandler) DeleteMessage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.contactService.DeleteMessage(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyContactNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"deleted": true,
	})
}
