package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

/************************************************
/**** MARK: SMS DIRECTION ****/
/************************************************/
const SMS_DIRECTION_INBOUND = "inbound"
const SMS_DIRECTION_OUTBOUND = "outbound"

/************************************************
/**** MARK: SMS STATUS ****/
/************************************************/
const SMS_STATUS_RECEIVED = "received"
const SMS_STATUS_SENT = "sent"
const SMS_STATUS_DELIVERED = "delivered"
const SMS_STATUS_FAILED = "failed"

// SMSMessage logs every message crossing the SMS boundary: inbound technician
// commands (with their classification outcome) and outbound notifications.
type SMSMessage struct {
	ID               string     `gorm:"primary_key" json:"id"`
	MessageSID       string     `gorm:"column:message_sid" json:"message_sid"`
	FromNumber       string     `gorm:"column:from_number;not null" json:"from_number"`
	ToNumber         string     `gorm:"column:to_number;not null" json:"to_number"`
	Body             string     `gorm:"type:text" json:"body"`
	Direction        string     `json:"direction"`
	Status           string     `json:"status"`
	JobID            string     `gorm:"column:job_id;index" json:"job_id"`
	EmployeeID       string     `gorm:"column:employee_id;index" json:"employee_id"`
	CustomerID       string     `gorm:"column:customer_id" json:"customer_id"`
	CommandType      string     `gorm:"column:command_type" json:"command_type"`
	CommandProcessed bool       `gorm:"column:command_processed;default:false" json:"command_processed"`
	MediaURL         string     `gorm:"column:media_url" json:"media_url"`
	MediaType        string     `gorm:"column:media_type" json:"media_type"`
	ReceivedAt       *time.Time `gorm:"column:received_at" json:"received_at"`
	SentAt           *time.Time `gorm:"column:sent_at" json:"sent_at"`
	CreatedAt        *time.Time `json:"created_at"`
}

func (msg *SMSMessage) BeforeCreate(scope *gorm.Scope) error {
	if msg.ID == "" {
		return scope.SetColumn("ID", uuid.NewString())
	}
	return nil
}
