package models

import (
	"time"

	"surv/tools"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

/************************************************
/**** MARK: USER ROLES ****/
/************************************************/
const USER_ROLE_ADMIN = "admin"
const USER_ROLE_MANAGER = "manager"
const USER_ROLE_TECHNICIAN = "technician"

/************************************************
/**** MARK: USER STATUS ****/
/************************************************/
const USER_STATUS_AVAILABLE = 0
const USER_STATUS_PENDING = 1
const USER_STATUS_BLOCKED = 2

// User represents an employee account (admin, manager or field technician).
// Phone is stored normalized (E.164) so inbound SMS senders can be resolved.
type User struct {
	ID        string     `gorm:"primary_key" json:"id"`
	Email     string     `gorm:"not null;unique" json:"email" form:"email"`
	Password  string     `gorm:"not null" json:"password" form:"password"`
	FirstName string     `gorm:"column:first_name" json:"first_name" form:"first_name"`
	LastName  string     `gorm:"column:last_name" json:"last_name" form:"last_name"`
	Phone     string     `gorm:"index" json:"phone" form:"phone"`
	Role      string     `gorm:"not null;default:'technician'" json:"role" form:"role"`
	Status    int        `gorm:"default:0" json:"status" form:"status"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (user *User) BeforeCreate(scope *gorm.Scope) error {
	if user.ID == "" {
		return scope.SetColumn("ID", uuid.NewString())
	}
	return nil
}

func (user User) MissingFields() string {
	if user.Email == "" {
		return "email"
	} else if user.Password == "" {
		return "password"
	} else if tools.CheckPassword(user.Password) != "" {
		return tools.CheckPassword(user.Password)
	} else if user.FirstName == "" {
		return "first_name"
	}
	return ""
}

func (user User) FullName() string {
	if user.LastName == "" {
		return user.FirstName
	}
	return user.FirstName + " " + user.LastName
}

// CanDispatch reports whether the user may manage jobs and recurring rules.
func (user User) CanDispatch() bool {
	return user.Role == USER_ROLE_ADMIN || user.Role == USER_ROLE_MANAGER
}

func IsValidRole(role string) bool {
	switch role {
	case USER_ROLE_ADMIN, USER_ROLE_MANAGER, USER_ROLE_TECHNICIAN:
		return true
	}
	return false
}
