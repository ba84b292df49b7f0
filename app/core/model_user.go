package core

import "github.com/jinzhu/gorm"

const PasswordMinLength = 8
const PasswordMessage = "password needs to be at least 8 characters long"

type UserType uint

const (
	UserTypeAdmin  UserType = 0
	UserTypeMember UserType = 1
)

// 0 - admin; 1 - member
// swagger:model
type User struct {
	Model
	Username       string   `json:"username,omitempty"`
	UserType       UserType `json:"user_type,omitempty"` // 0 - admin; 1 - member
	DisplayName    string   `json:"display_name,omitempty"`
	Email          string   `json:"email,omitempty"`
	Token          string   `json:"token,omitempty" gorm:"-"`
	Password       string   `json:"-"`
	PasswordX      string   `json:"password,omitempty" gorm:"-"`
	PasswordRepeat string   `json:"password_repeat,omitempty" gorm:"-"`
	IsActive       bool     `json:"is_active"`
	IsSysadmin     bool     `json:"is_sysadmin,omitempty"`
	RegisteredAt   NullTime `json:"registered_at,omitempty"`

	CreatedBy uint `json:"created_by"`

	Errors map[string]string `json:"-" gorm:"-"`
}

type Users []User

func (User) TableName() string {
	return "system_accounts"
}

func (user *User) AfterFind(tx *gorm.DB) (err error) {

	if !user.RegisteredAt.Valid {
		user.RegisteredAt.Time = user.CreatedAt
		user.RegisteredAt.Valid = true
	}

	return
}
