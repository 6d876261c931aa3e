// internal/services/team_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

type TeamService struct {
	db             *gorm.DB
	storageService *StorageService
}

type CreateTeamMemberRequest struct {
	FirstName        string  `json:"firstName" form:"firstName" validate:"required,min=2,max=100"`
	LastName         string  `json:"lastName" form:"lastName" validate:"required,min=2,max=100"`
	Email            string  `json:"email" form:"email" validate:"required,email"`
	PhoneNumber      string  `json:"phoneNumber" form:"phoneNumber" validate:"max=30"`
	Position         string  `json:"position" form:"position" validate:"required,max=100"`
	Department       string  `json:"department" form:"department" validate:"required"`
	EmploymentStatus string  `json:"employmentStatus" form:"employmentStatus"`
	Salary           float64 `json:"salary" form:"salary" validate:"omitempty,gte=0"`
	HireDate         string  `json:"hireDate" form:"hireDate"`
	Address          string  `json:"address" form:"address" validate:"max=255"`
	City             string  `json:"city" form:"city" validate:"max=100"`
	PostalCode       string  `json:"postalCode" form:"postalCode" validate:"max=20"`
	Description      string  `json:"description" form:"description" validate:"max=2000"`
}

type UpdateTeamMemberRequest struct {
	FirstName        *string  `json:"firstName" validate:"omitempty,min=2,max=100"`
	LastName         *string  `json:"lastName" validate:"omitempty,min=2,max=100"`
	Email            *string  `json:"email" validate:"omitempty,email"`
	PhoneNumber      *string  `json:"phoneNumber" validate:"omitempty,max=30"`
	Position         *string  `json:"position" validate:"omitempty,max=100"`
	Department       *string  `json:"department"`
	EmploymentStatus *string  `json:"employmentStatus"`
	Salary           *float64 `json:"salary" validate:"omitempty,gte=0"`
	HireDate         *string  `json:"hireDate"`
	Address          *string  `json:"address" validate:"omitempty,max=255"`
	City             *string  `json:"city" validate:"omitempty,max=100"`
	PostalCode       *string  `json:"postalCode" validate:"omitempty,max=20"`
	Description      *string  `json:"description" validate:"omitempty,max=2000"`
}

type TeamSearchParams struct {
	utils.PaginationParams
	Department string
	IsActive   *bool
}

// TeamStats is the dashboard aggregate: overall counts plus a per
// department breakdown.
type TeamStats struct {
	Total        int64            `json:"total"`
	Active       int64            `json:"active"`
	Inactive     int64            `json:"inactive"`
	ByDepartment map[string]int64 `json:"byDepartment"`
}

func NewTeamService(db *gorm.DB, storageService *StorageService) *TeamService {
	return &TeamService{
		db:             db,
		storageService: storageService,
	}
}

func (s *TeamService) CreateTeamMember(req *CreateTeamMemberRequest) (*models.TeamMember, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	department := models.Department(req.Department)
	if !department.IsValid() {
		return nil, errors.New("invalid department")
	}

	status := models.EmploymentStatusCDI
	if req.EmploymentStatus != "" {
		status = models.EmploymentStatus(req.EmploymentStatus)
		if !status.IsValid() {
			return nil, errors.New("invalid employment status")
		}
	}

	var hireDate *time.Time
	if req.HireDate != "" {
		parsed, err := time.Parse(dateLayout, req.HireDate)
		if err != nil {
			return nil, errors.New("invalid hire date format, expected YYYY-MM-DD")
		}
		hireDate = &parsed
	}

	var existing models.TeamMember
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, errors.New("team member with this email already exists")
	}

	member := &models.TeamMember{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		Position:         req.Position,
		Department:       department,
		EmploymentStatus: status,
		Salary:           req.Salary,
		HireDate:         hireDate,
		Address:          req.Address,
		City:             req.City,
		PostalCode:       req.PostalCode,
		Description:      req.Description,
		IsActive:         true,
	}

	if err := s.db.Create(member).Error; err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}

	return member, nil
}

// CreateTeamMemberWithPhoto stores the profile photo before creating
// the record. A failed upload aborts the creation.
func (s *TeamService) CreateTeamMemberWithPhoto(req *CreateTeamMemberRequest, file multipart.File, header *multipart.FileHeader) (*models.TeamMember, error) {
	member, err := s.CreateTeamMember(req)
	if err != nil {
		return nil, err
	}

	if file != nil && header != nil && s.storageService != nil {
		if err := s.storageService.ValidateImage(file); err != nil {
			return nil, fmt.Errorf("invalid photo: %w", err)
		}
		result, err := s.storageService.UploadFile(file, header, s.storageService.GetDefaultUploadOptions("team"))
		if err != nil {
			return nil, fmt.Errorf("failed to store photo: %w", err)
		}

		updates := map[string]interface{}{
			"image_url": result.URL,
			"image_key": result.Key,
		}
		if err := s.db.Model(member).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to attach photo: %w", err)
		}
		member.ImageURL = result.URL
		member.ImageKey = result.Key
	}

	return member, nil
}

func (s *TeamService) GetTeamMember(id uint) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := s.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("team member not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &member, nil
}

func (s *TeamService) UpdateTeamMember(id uint, req *UpdateTeamMemberRequest) (*models.TeamMember, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	member, err := s.GetTeamMember(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil && *req.Email != member.Email {
		var existing models.TeamMember
		if err := s.db.Where("email = ? AND id != ?", *req.Email, id).First(&existing).Error; err == nil {
			return nil, errors.New("team member with this email already exists")
		}
		updates["email"] = *req.Email
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Department != nil {
		department := models.Department(*req.Department)
		if !department.IsValid() {
			return nil, errors.New("invalid department")
		}
		updates["department"] = department
	}
	if req.EmploymentStatus != nil {
		status := models.EmploymentStatus(*req.EmploymentStatus)
		if !status.IsValid() {
			return nil, errors.New("invalid employment status")
		}
		updates["employment_status"] = status
	}
	if req.Salary != nil {
		updates["salary"] = *req.Salary
	}
	if req.HireDate != nil {
		parsed, err := time.Parse(dateLayout, *req.HireDate)
		if err != nil {
			return nil, errors.New("invalid hire date format, expected YYYY-MM-DD")
		}
		updates["hire_date"] = &parsed
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.PostalCode != nil {
		updates["postal_code"] = *req.PostalCode
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(member).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update team member: %w", err)
		}
	}

	return s.GetTeamMember(id)
}

func (s *TeamService) DeleteTeamMember(id uint) error {
	member, err := s.GetTeamMember(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(member).Error; err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}

	if member.ImageKey != "" && s.storageService != nil {
		if err := s.storageService.DeleteFile(member.ImageKey); err != nil {
			fmt.Printf("Warning: failed to delete photo %s: %v\n", member.ImageKey, err)
		}
	}

	return nil
}

func (s *TeamService) GetActiveMembers() ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := s.db.Where("is_active = ?", true).
		Order("last_name ASC, first_name ASC").
		Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch team members: %w", err)
	}

	return members, nil
}

func (s *TeamService) GetMembersByDepartment(department string) ([]models.TeamMember, error) {
	dep := models.Department(department)
	if !dep.IsValid() {
		return nil, errors.New("invalid department")
	}

	var members []models.TeamMember
	if err := s.db.Where("department = ?", dep).
		Order("last_name ASC, first_name ASC").
		Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch team members: %w", err)
	}

	return members, nil
}

func (s *TeamService) SearchTeamMembers(params TeamSearchParams) ([]models.TeamMember, int64, error) {
	query := s.db.Model(&models.TeamMember{})

	if params.Department != "" {
		query = query.Where("department = ?", params.Department)
	}

	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count team members: %w", err)
	}

	allowedSortFields := []string{"created_at", "last_name", "first_name", "department", "hire_date"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var members []models.TeamMember
	if err := query.Find(&members).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch team members: %w", err)
	}

	return members, total, nil
}

func (s *TeamService) SetActive(id uint, active bool) (*models.TeamMember, error) {
	member, err := s.GetTeamMember(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(member).Update("is_active", active).Error; err != nil {
		return nil, fmt.Errorf("failed to update team member: %w", err)
	}

	member.IsActive = active

	return member, nil
}

func (s *TeamService) GetStats() (*TeamStats, error) {
	stats := &TeamStats{ByDepartment: make(map[string]int64)}

	if err := s.db.Model(&models.TeamMember{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count team members: %w", err)
	}

	if err := s.db.Model(&models.TeamMember{}).Where("is_active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, fmt.Errorf("failed to count active members: %w", err)
	}
	stats.Inactive = stats.Total - stats.Active

	var rows []struct {
		Department string
		Count      int64
	}
	if err := s.db.Model(&models.TeamMember{}).
		Select("department, COUNT(*) as count").
		Group("department").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate departments: %w", err)
	}

	for _, row := range rows {
		stats.ByDepartment[row.Department] = row.Count
	}

	return stats, nil
}
