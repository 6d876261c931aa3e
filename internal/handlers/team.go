// internal/handlers/team.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/i18n"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/services"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// GET /team-members
func (h *TeamHandler) GetTeamMembers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.TeamSearchParams{
		PaginationParams: params,
		Department:       c.Query("department"),
	}

	if activeStr := c.Query("isActive"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			searchParams.IsActive = &active
		}
	}

	members, total, err := h.teamService.SearchTeamMembers(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(members, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /team-members/actifs
func (h *TeamHandler) GetActiveMembers(c *gin.Context) {
	members, err := h.teamService.GetActiveMembers()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, members)
}

// GET /team-members/departement/:department
func (h *TeamHandler) GetMembersByDepartment(c *gin.Context) {
	members, err := h.teamService.GetMembersByDepartment(c.Param("department"))
	if err != nil {
		if strings.Contains(err.Error(), "invalid") {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, members)
}

// GET /team-members/:id
func (h *TeamHandler) GetTeamMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.teamService.GetTeamMember(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyTeamMemberNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, member)
}

// POST /team-members (multipart, optional "photo")
func (h *TeamHandler) CreateTeamMember(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateTeamMemberRequest
	if !bindForm(c, &req) {
		return
	}

	file, header, fileErr := c.Request.FormFile("photo")
	var (
		member interface{}
		err    error
	)
	if fileErr == nil {
		defer file.Close()
		member, err = h.teamService.CreateTeamMemberWithPhoto(&req, file, header)
	} else {
		member, err = h.teamService.CreateTeamMember(&req)
	}
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyTeamMemberExists))
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTeamMemberCreated),
		"member":  member,
	})
}

// PUT /team-members/:id
func (h *TeamHandler) UpdateTeamMember(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateTeamMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.teamService.UpdateTeamMember(id, &req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, i18n.KeyTeamMemberNotFound)
		case strings.Contains(err.Error(), "already exists"):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyTeamMemberExists))
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTeamMemberUpdated),
		"member":  member,
	})
}

// PUT /team-members/:id/activate
func (h *TeamHandler) ActivateTeamMember(c *gin.Context) {
	h.setActive(c, true)
}

// PUT /team-members/:id/deactivate
func (h *TeamHandler) DeactivateTeamMember(c *gin.Context) {
	h.setActive(c, false)
}

func (h *TeamHandler) setActive(c *gin.Context, active bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.teamService.SetActive(id, active)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyTeamMemberNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, member)
}

// GET /team-members/stats
func (h *TeamHandler) GetStats(c *gin.Context) {
	stats, err := h.teamService.GetStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, stats)
}

// DELETE /team-members/:id
func (h *TeamHandler) DeleteTeamMember(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeamMember(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, i18n.KeyTeamMemberNotFound)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyTeamMemberDeleted),
	})
}
