package model

import "time"

type UserRole string

const (
	RoleUser    UserRole = "USER"
	RoleManager UserRole = "MANAGER"
	RoleAdmin   UserRole = "ADMIN"
)

type User struct {
	ID int64 `gorm:"primaryKey;column:id" json:"id"`

	Username string `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Password string `gorm:"column:password;not null" json:"-"`

	FirstName string   `gorm:"column:first_name" json:"firstName"`
	LastName  string   `gorm:"column:last_name" json:"lastName"`
	Role      UserRole `gorm:"column:role;default:USER" json:"role"`

	IsActive  bool       `gorm:"column:is_active;default:true" json:"isActive"`
	IsOnline  bool       `gorm:"column:is_online;default:false" json:"isOnline"`
	LastLogin *time.Time `gorm:"column:last_login" json:"lastLogin,omitempty"`

	ProfileImageURL *string `gorm:"column:profile_image_url" json:"profileImageUrl,omitempty"`
	Timezone        string  `gorm:"column:timezone;default:UTC" json:"timezone"`
	Language        string  `gorm:"column:language;default:en" json:"language"`
	WorkHoursPerDay int     `gorm:"column:work_hours_per_day;default:8" json:"workHoursPerDay"`

	ResetToken       *string    `gorm:"column:reset_token" json:"-"`
	ResetTokenExpiry *time.Time `gorm:"column:reset_token_expiry" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// FullName joins first and last name for display and email salutations.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
