package pass

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campuscore/erp-api/services"
	"github.com/campuscore/erp-api/utils/middleware"
	"github.com/campuscore/erp-api/utils/response"
	"github.com/campuscore/erp-api/utils/validation"
)

// PassHandler handles bus and mess pass requests
type PassHandler struct {
	service   *services.PassService
	validator *validation.Validator
}

// NewPassHandler creates a new pass handler
func NewPassHandler(service *services.PassService) *PassHandler {
	return &PassHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// IssuePassRequest represents the request body for issuing a pass
type IssuePassRequest struct {
	UserID    uint   `json:"user_id" validate:"required,min=1"`
	PassType  string `json:"pass_type" validate:"required,oneof=bus jain_mess"`
	ValidFrom string `json:"valid_from" validate:"required"`
	ValidTill string `json:"valid_till" validate:"required"`
}

// IssuePass handles POST /api/v1/passes
func (h *PassHandler) IssuePass(c *fiber.Ctx) error {
	var req IssuePassRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	validFrom, err := time.Parse("2006-01-02", req.ValidFrom)
	if err != nil {
		return response.BadRequest(c, "valid_from must be yyyy-mm-dd")
	}
	validTill, err := time.Parse("2006-01-02", req.ValidTill)
	if err != nil {
		return response.BadRequest(c, "valid_till must be yyyy-mm-dd")
	}

	pass, err := h.service.IssuePass(c.Context(), services.IssuePassRequest{
		UserID:    req.UserID,
		PassType:  req.PassType,
		ValidFrom: validFrom,
		ValidTill: validTill,
	})
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.Created(c, pass)
}

// RevokePass handles POST /api/v1/passes/:id/revoke
func (h *PassHandler) RevokePass(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid pass id")
	}

	if err := h.service.RevokePass(c.Context(), uint(id)); err != nil {
		return response.NotFound(c, "Pass not found")
	}

	return response.Success(c, fiber.Map{
		"message": "Pass revoked",
	})
}

// ListMyPasses handles GET /api/v1/passes/me. Students see only the freshest
// pass per type; superseded rows never surface.
func (h *PassHandler) ListMyPasses(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	passes, err := h.service.ListLatest(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch passes")
	}

	return response.Success(c, passes)
}

// ListUserPasses handles GET /api/v1/passes/user/:id for staff
func (h *PassHandler) ListUserPasses(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	passes, err := h.service.ListLatest(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch passes")
	}

	return response.Success(c, passes)
}

// GetPassQR handles GET /api/v1/passes/:id/qr. The caller must own the pass
// unless they hold a staff role.
func (h *PassHandler) GetPassQR(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid pass id")
	}

	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	pass, err := h.service.GetPass(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Pass not found")
	}
	if pass.UserID != user.ID && !user.IsStaffRole() {
		return response.Forbidden(c, "Not your pass")
	}

	png, err := h.service.QRPNG(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to render QR code")
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

// VerifyRequest represents a scanned QR token
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// VerifyPass handles POST /api/v1/passes/verify, the scanner-side check
func (h *PassHandler) VerifyPass(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Token == "" {
		return response.BadRequest(c, "Token is required")
	}

	pass, err := h.service.VerifyToken(c.Context(), req.Token, time.Now())
	if err != nil {
		return response.Success(c, fiber.Map{
			"valid":  false,
			"reason": err.Error(),
		})
	}

	return response.Success(c, fiber.Map{
		"valid":     true,
		"pass_type": pass.PassType,
		"user":      pass.User.Name,
		"till":      pass.ValidTill.Format("2006-01-02"),
	})
}
