package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/campuscore/erp-api/model"
)

// AnnouncementService creates announcements and fans them out as user
// notifications to the targeted audience.
type AnnouncementService struct {
	db *gorm.DB
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: db}
}

// CreateAnnouncementRequest represents a request to publish an announcement
type CreateAnnouncementRequest struct {
	Title      string
	Message    string
	TargetType string
	DeptID     *uint
	ClassID    *uint
	CreatedBy  uint
}

// Publish stores the announcement and delivers a notification row to every
// user in its audience within one transaction.
func (s *AnnouncementService) Publish(ctx context.Context, req CreateAnnouncementRequest) (*model.Announcement, error) {
	switch req.TargetType {
	case model.TargetAll:
	case model.TargetDepartment:
		if req.DeptID == nil {
			return nil, fmt.Errorf("dept_id required for department announcements")
		}
	case model.TargetClass:
		if req.DeptID == nil || req.ClassID == nil {
			return nil, fmt.Errorf("dept_id and class_id required for class announcements")
		}
	default:
		return nil, fmt.Errorf("unknown target type %q", req.TargetType)
	}

	announcement := &model.Announcement{
		Title:      req.Title,
		Message:    req.Message,
		TargetType: req.TargetType,
		DeptID:     req.DeptID,
		ClassID:    req.ClassID,
		CreatedBy:  req.CreatedBy,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(announcement).Error; err != nil {
			return err
		}

		audience := tx.Model(&model.User{}).Select("id")
		switch req.TargetType {
		case model.TargetDepartment:
			audience = audience.Where("dept_id = ?", *req.DeptID)
		case model.TargetClass:
			audience = audience.Where("dept_id = ? AND class_id = ?", *req.DeptID, *req.ClassID)
		}

		var userIDs []uint
		if err := audience.Find(&userIDs).Error; err != nil {
			return err
		}

		if len(userIDs) == 0 {
			return nil
		}

		notifications := make([]model.UserNotification, 0, len(userIDs))
		for _, id := range userIDs {
			notifications = append(notifications, model.UserNotification{
				UserID:         id,
				Category:       model.NotificationCategoryAnnouncement,
				Title:          req.Title,
				Message:        req.Message,
				AnnouncementID: &announcement.ID,
			})
		}
		return tx.CreateInBatches(notifications, 500).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to publish announcement: %w", err)
	}

	return announcement, nil
}

// Feed returns a user's notifications, newest first
func (s *AnnouncementService) Feed(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]model.UserNotification, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []model.UserNotification
	if err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags one of the user's notifications as read
func (s *AnnouncementService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	result := s.db.WithContext(ctx).
		Model(&model.UserNotification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
