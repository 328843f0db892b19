package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

/************************************************
/**** MARK: CUSTOMER STATUS ****/
/************************************************/
const CUSTOMER_STATUS_ACTIVE = "active"
const CUSTOMER_STATUS_INACTIVE = "inactive"
const CUSTOMER_STATUS_ARCHIVED = "archived"

// Customer represents a service customer. Phone is used for the
// on-my-way notification and is stored normalized (E.164).
type Customer struct {
	ID           string     `gorm:"primary_key" json:"id"`
	FirstName    string     `gorm:"not null" json:"first_name" form:"first_name"`
	LastName     string     `gorm:"not null" json:"last_name" form:"last_name"`
	Email        string     `gorm:"index" json:"email" form:"email"`
	Phone        string     `gorm:"index" json:"phone" form:"phone"`
	Mobile       string     `json:"mobile" form:"mobile"`
	CompanyName  string     `gorm:"column:company_name" json:"company_name" form:"company_name"`
	AddressLine1 string     `gorm:"column:address_line1" json:"address_line1" form:"address_line1"`
	AddressLine2 string     `gorm:"column:address_line2" json:"address_line2" form:"address_line2"`
	City         string     `json:"city" form:"city"`
	State        string     `json:"state" form:"state"`
	ZipCode      string     `gorm:"column:zip_code" json:"zip_code" form:"zip_code"`
	Notes        string     `gorm:"type:text" json:"notes" form:"notes"`
	Status       string     `gorm:"default:'active'" json:"status" form:"status"`
	CreatedBy    string     `gorm:"column:created_by" json:"created_by"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func (customer *Customer) BeforeCreate(scope *gorm.Scope) error {
	if customer.ID == "" {
		return scope.SetColumn("ID", uuid.NewString())
	}
	return nil
}

func (customer Customer) MissingFields() string {
	if customer.FirstName == "" {
		return "first_name"
	} else if customer.LastName == "" {
		return "last_name"
	}
	return ""
}

func (customer Customer) FullName() string {
	return customer.FirstName + " " + customer.LastName
}
