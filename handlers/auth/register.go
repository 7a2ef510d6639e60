package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/campuscore/erp-api/model"
	authutil "github.com/campuscore/erp-api/utils/auth"
	"github.com/campuscore/erp-api/utils/middleware"
	"github.com/campuscore/erp-api/utils/response"
	"github.com/campuscore/erp-api/utils/validation"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *authutil.JWTManager
	blacklistService     *authutil.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *authutil.JWTManager, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		blacklistService:     authutil.NewBlacklistService(db),
		bruteForceProtection: bruteForceProtection,
		validator:            validation.NewValidator(),
	}
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=principal hod ca staff student trainer"`
	DeptID   *uint  `json:"dept_id" validate:"omitempty,min=1"`
	ClassID  *uint  `json:"class_id" validate:"omitempty,min=1"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	DeptID    *uint     `json:"dept_id,omitempty"`
	ClassID   *uint     `json:"class_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		DeptID:    user.DeptID,
		ClassID:   user.ClassID,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// TokenResponse bundles a user with a fresh token pair
type TokenResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // in seconds
}

func (h *AuthHandler) issueTokens(user *model.User) (*TokenResponse, error) {
	subject := authutil.TokenSubject{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		DeptID:       user.DeptID,
		ClassID:      user.ClassID,
		TokenVersion: user.TokenVersion,
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(subject)
	if err != nil {
		return nil, err
	}

	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(subject)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		User:         toUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    24 * 60 * 60,
	}, nil
}

// Register handles user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if ok, reasons := validation.ValidatePassword(req.Password); !ok {
		return response.BadRequest(c, strings.Join(reasons, "; "))
	}

	if req.Role == "" {
		req.Role = model.RoleStudent
	}

	// HOD and CA accounts carry a fixed posting; reject accounts without one
	switch req.Role {
	case model.RoleHOD:
		if req.DeptID == nil {
			return response.BadRequest(c, "HOD accounts require a dept_id")
		}
	case model.RoleCA:
		if req.DeptID == nil || req.ClassID == nil {
			return response.BadRequest(c, "Class advisor accounts require dept_id and class_id")
		}
	}

	var existingUser model.User
	if err := h.db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		return response.Conflict(c, "User with this email already exists")
	}

	hashedPassword, err := authutil.HashPassword(req.Password)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	user := model.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Name:         validation.SanitizeString(req.Name),
		Role:         req.Role,
		DeptID:       req.DeptID,
		ClassID:      req.ClassID,
		TokenVersion: 0,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to create user")
	}

	res, err := h.issueTokens(&user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	return response.Created(c, res)
}
