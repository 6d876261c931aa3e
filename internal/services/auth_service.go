// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/config"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username        string `json:"username" validate:"required,username"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password" validate:"required,strong_password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	ExpiresIn    int          `json:"expiresIn"` // seconds
}

type CurrentUser struct {
	Authenticated bool     `json:"authenticated"`
	Username      string   `json:"username"`
	Roles         []string `json:"roles"`
	IsAdmin       bool     `json:"isAdmin"`
	IsUser        bool     `json:"isUser"`
}

type RoleChangeRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates an account with the default user role and returns a
// signed-in session.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.Password != req.ConfirmPassword {
		return nil, errors.New("passwords do not match")
	}

	var existing models.User
	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, errors.New("username already taken")
	}

	var userRole models.Role
	if err := s.db.Where("name = ?", models.RoleUser).First(&userRole).Error; err != nil {
		return nil, fmt.Errorf("failed to load default role: %w", err)
	}

	user := &models.User{
		UserID:   uuid.New().String(),
		Username: req.Username,
		Email:    req.Email,
		Roles:    []models.Role{userRole},
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.buildAuthResponse(user)
}

// Login answers with the same error for an unknown username and a
// wrong password.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.findUser("username", req.Username)
	if err != nil {
		return nil, errors.New("invalid username or password")
	}
	if err := user.CheckPassword(req.Password); err != nil {
		return nil, errors.New("invalid username or password")
	}

	now := time.Now()
	user.LastLoginAt = &now
	s.db.Model(user).Update("last_login_at", &now)

	return s.buildAuthResponse(user)
}

func (s *AuthService) RefreshToken(refreshToken string) (*AuthResponse, error) {
	userID, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	user, err := s.findUser("user_id", userID)
	if err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

// GetCurrentUser resolves the session view the frontend uses for
// route guards.
func (s *AuthService) GetCurrentUser(userID string) (*CurrentUser, error) {
	user, err := s.findUser("user_id", userID)
	if err != nil {
		return nil, err
	}

	return &CurrentUser{
		Authenticated: true,
		Username:      user.Username,
		Roles:         user.RoleNames(),
		IsAdmin:       user.HasRole(models.RoleAdmin),
		IsUser:        user.HasRole(models.RoleUser),
	}, nil
}

// GrantRole adds a role to a user. Granting an already-held role is a
// no-op.
func (s *AuthService) GrantRole(req *RoleChangeRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	user, role, err := s.loadUserAndRole(req.Username, req.Role)
	if err != nil {
		return err
	}
	if user.HasRole(role.Name) {
		return nil
	}

	if err := s.db.Model(user).Association("Roles").Append(role); err != nil {
		return fmt.Errorf("failed to grant role: %w", err)
	}
	return nil
}

func (s *AuthService) RevokeRole(req *RoleChangeRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	user, role, err := s.loadUserAndRole(req.Username, req.Role)
	if err != nil {
		return err
	}

	if err := s.db.Model(user).Association("Roles").Delete(role); err != nil {
		return fmt.Errorf("failed to revoke role: %w", err)
	}
	return nil
}

func (s *AuthService) GetUserByUserID(userID string) (*models.User, error) {
	return s.findUser("user_id", userID)
}

// findUser loads a user with roles preloaded by an exact column match.
func (s *AuthService) findUser(column, value string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Roles").Where(column+" = ?", value).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *AuthService) loadUserAndRole(username, roleName string) (*models.User, *models.Role, error) {
	user, err := s.findUser("username", username)
	if err != nil {
		return nil, nil, err
	}

	var role models.Role
	if err := s.db.Where("name = ?", roleName).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.New("role not found")
		}
		return nil, nil, fmt.Errorf("database error: %w", err)
	}

	return user, &role, nil
}

func (s *AuthService) buildAuthResponse(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(
		user.UserID,
		user.Username,
		user.RoleNames(),
		s.cfg.JWT.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.UserID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.cfg.JWT.AccessTokenTTL * 3600,
	}, nil
}
