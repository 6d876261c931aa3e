// internal/handlers/handlers.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/i18n"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

// bindJSON decodes the JSON body into req and runs struct validation.
// It writes the 400 response itself and reports whether the handler
// may proceed.
func bindJSON(c *gin.Context, req interface{}) bool {
	return bindRequest(c, req, c.ShouldBindJSON)
}

// bindForm is bindJSON for form-encoded and multipart bodies.
func bindForm(c *gin.Context, req interface{}) bool {
	return bindRequest(c, req, c.ShouldBind)
}

func bindRequest(c *gin.Context, req interface{}, bind func(interface{}) error) bool {
	if err := bind(req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}

	return true
}

// parseIDParam reads a numeric path parameter, replying 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID parameter", nil)
		return 0, false
	}
	return uint(id), true
}
