package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/campuscore/erp-api/model"
)

// PassService handles digital pass issuance, revocation and QR rendering
type PassService struct {
	db *gorm.DB
}

// NewPassService creates a new pass service
func NewPassService(db *gorm.DB) *PassService {
	return &PassService{db: db}
}

// IssuePassRequest represents a request to issue a pass
type IssuePassRequest struct {
	UserID    uint
	PassType  string
	ValidFrom time.Time
	ValidTill time.Time
}

// IssuePass creates a new pass and invalidates still-active older passes of
// the same type for the same user, all in one transaction.
func (s *PassService) IssuePass(ctx context.Context, req IssuePassRequest) (*model.Pass, error) {
	if req.PassType != model.PassTypeBus && req.PassType != model.PassTypeJainMess {
		return nil, fmt.Errorf("unknown pass type %q", req.PassType)
	}
	if req.ValidTill.Before(req.ValidFrom) {
		return nil, fmt.Errorf("valid_till precedes valid_from")
	}

	pass := &model.Pass{
		UserID:    req.UserID,
		PassType:  req.PassType,
		ValidFrom: req.ValidFrom,
		ValidTill: req.ValidTill,
		IsValid:   true,
		QRToken:   uuid.New().String(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Pass{}).
			Where("user_id = ? AND pass_type = ? AND is_valid = ?", req.UserID, req.PassType, true).
			Update("is_valid", false).Error; err != nil {
			return err
		}
		return tx.Create(pass).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to issue pass: %w", err)
	}

	return pass, nil
}

// RevokePass invalidates a pass server-side
func (s *PassService) RevokePass(ctx context.Context, passID uint) error {
	result := s.db.WithContext(ctx).
		Model(&model.Pass{}).
		Where("id = ?", passID).
		Update("is_valid", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LatestByType keeps, for each distinct pass_type, the pass with the furthest
// valid_till. When two passes of the same type share a valid_till the later
// input element wins (last write wins). Result order follows the first
// appearance of each type in the input.
func LatestByType(passes []model.Pass) []model.Pass {
	order := make([]string, 0, 2)
	best := make(map[string]model.Pass, 2)

	for _, p := range passes {
		current, seen := best[p.PassType]
		if !seen {
			order = append(order, p.PassType)
			best[p.PassType] = p
			continue
		}
		if !p.ValidTill.Before(current.ValidTill) {
			best[p.PassType] = p
		}
	}

	out := make([]model.Pass, 0, len(order))
	for _, t := range order {
		out = append(out, best[t])
	}
	return out
}

// ListLatest returns the user's current pass per type
func (s *PassService) ListLatest(ctx context.Context, userID uint) ([]model.Pass, error) {
	var passes []model.Pass
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_valid = ?", userID, true).
		Order("created_at ASC").
		Find(&passes).Error; err != nil {
		return nil, err
	}
	return LatestByType(passes), nil
}

// GetPass fetches a single pass by id
func (s *PassService) GetPass(ctx context.Context, passID uint) (*model.Pass, error) {
	var pass model.Pass
	if err := s.db.WithContext(ctx).First(&pass, passID).Error; err != nil {
		return nil, err
	}
	return &pass, nil
}

// QRPNG renders the pass token as a PNG QR image
func (s *PassService) QRPNG(ctx context.Context, passID uint) ([]byte, error) {
	var pass model.Pass
	if err := s.db.WithContext(ctx).First(&pass, passID).Error; err != nil {
		return nil, err
	}
	if !pass.IsValid {
		return nil, fmt.Errorf("pass %d has been revoked", passID)
	}

	return qrcode.Encode(pass.QRToken, qrcode.Medium, 256)
}

// VerifyToken resolves a scanned QR token to its pass and checks validity
func (s *PassService) VerifyToken(ctx context.Context, token string, at time.Time) (*model.Pass, error) {
	var pass model.Pass
	if err := s.db.WithContext(ctx).Preload("User").Where("qr_token = ?", token).First(&pass).Error; err != nil {
		return nil, err
	}
	if !pass.IsValid {
		return nil, fmt.Errorf("pass has been revoked")
	}
	day := at.Truncate(24 * time.Hour)
	if day.Before(pass.ValidFrom) || day.After(pass.ValidTill) {
		return nil, fmt.Errorf("pass is outside its validity window")
	}
	return &pass, nil
}
