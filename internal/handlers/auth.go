// internal/handlers/auth.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/i18n"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/services"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.Register(&req)
	if err != nil {
		if strings.Contains(err.Error(), "already taken") {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyAuthUserExists))
			return
		}
		if strings.Contains(err.Error(), "do not match") {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyAuthPasswordMismatch), nil)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyAuthRegisterSuccess),
		"user":         authResponse.User,
		"token":        authResponse.AccessToken,
		"refreshToken": authResponse.RefreshToken,
		"tokenType":    authResponse.TokenType,
		"expiresIn":    authResponse.ExpiresIn,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.Login(&req)
	if err != nil {
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"user":         authResponse.User,
		"token":        authResponse.AccessToken,
		"refreshToken": authResponse.RefreshToken,
		"tokenType":    authResponse.TokenType,
		"expiresIn":    authResponse.ExpiresIn,
	})
}

// POST /auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user":         authResponse.User,
		"token":        authResponse.AccessToken,
		"refreshToken": authResponse.RefreshToken,
		"tokenType":    authResponse.TokenType,
		"expiresIn":    authResponse.ExpiresIn,
	})
}

// GET /auth/user
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		// Anonymous session view, mirrors the frontend route guard shape
		utils.SuccessResponse(c, services.CurrentUser{Authenticated: false})
		return
	}

	current, err := h.authService.GetCurrentUser(userID)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, current)
}

// POST /auth/roles/grant
func (h *AuthHandler) GrantRole(c *gin.Context) {
	var req services.RoleChangeRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.GrantRole(&req); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"granted": true})
}

// POST /auth/roles/revoke
func (h *AuthHandler) RevokeRole(c *gin.Context) {
	var req services.RoleChangeRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.RevokeRole(&req); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"revoked": true})
}
