// internal/domain/activity/recorder.go
package activity

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/inventory-backend/internal/pkg/pagination"
	"github.com/your-org/inventory-backend/internal/pkg/search"
	"gorm.io/gorm"
)

// Actor identifies the user an activity is attributed to.
type Actor struct {
	ID       uint
	Email    string
	FullName string
}

// Recorder appends user activity entries. Recording is a best-effort side
// effect of the primary operation: a failed write is logged and swallowed so
// it cannot mask the outcome of the mutation it describes.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder creates a new activity recorder
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{
		db: db,
	}
}

// Record appends one activity entry attributed to the actor.
func (r *Recorder) Record(actor Actor, action string) {
	userID := actor.ID
	entry := UserActivity{
		UserID:   &userID,
		Email:    actor.Email,
		FullName: actor.FullName,
		Action:   action,
	}

	if err := r.db.Create(&entry).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": actor.ID,
			"action":  action,
		}).WithError(err).Error("failed to record user activity")
	}
}

// ListRequest represents activity list query parameters
type ListRequest struct {
	Page    int    `form:"page,default=1"`
	Keyword string `form:"keyword"`
	UserID  uint   `form:"user_id"`
}

// ListResponse represents a page of activity entries
type ListResponse struct {
	Activities []UserActivity        `json:"activities"`
	Pagination pagination.Pagination `json:"pagination"`
}

// List retrieves activity entries, newest first.
func (r *Recorder) List(req *ListRequest) (*ListResponse, error) {
	var entries []UserActivity
	var total int64

	query := r.db.Model(&UserActivity{})

	if req.UserID > 0 {
		query = query.Where("user_id = ?", req.UserID)
	}

	if req.Keyword != "" {
		query = search.Apply(query, req.Keyword, "fullname", "email", "action")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}

	err := query.
		Order("created_at DESC").
		Offset(pagination.Offset(req.Page)).
		Limit(pagination.DefaultPageSize).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve activities: %w", err)
	}

	return &ListResponse{
		Activities: entries,
		Pagination: pagination.Build(req.Page, total),
	}, nil
}
