package model

import "time"

// Screenshot is one captured frame, stored remotely and referenced by URL.
type Screenshot struct {
	ID int64 `gorm:"primaryKey;column:id" json:"id"`

	UserID      int64  `gorm:"column:user_id;index;not null" json:"userId"`
	TimeEntryID *int64 `gorm:"column:time_entry_id;index" json:"timeEntryId,omitempty"`

	URL      string `gorm:"column:url;not null" json:"url"`
	PublicID string `gorm:"column:public_id" json:"publicId"`
	FileName string `gorm:"column:file_name" json:"fileName"`

	FileSize    int64 `gorm:"column:file_size" json:"fileSize"`
	ImageWidth  int   `gorm:"column:image_width" json:"imageWidth"`
	ImageHeight int   `gorm:"column:image_height" json:"imageHeight"`

	CapturedAt time.Time `gorm:"column:captured_at;index" json:"capturedAt"`
	IsManual   bool      `gorm:"column:is_manual;default:false" json:"isManual"`
	Notes      string    `gorm:"column:notes" json:"notes"`

	IsApproved bool       `gorm:"column:is_approved;default:false" json:"isApproved"`
	ApprovedBy *int64     `gorm:"column:approved_by" json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `gorm:"column:approved_at" json:"approvedAt,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Screenshot) TableName() string { return "screenshots" }
