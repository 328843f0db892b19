package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

/************************************************
/**** MARK: FILE CATEGORIES ****/
/************************************************/
const FILE_CATEGORY_BEFORE_PHOTO = "before_photo"
const FILE_CATEGORY_AFTER_PHOTO = "after_photo"
const FILE_CATEGORY_DOCUMENT = "document"
const FILE_CATEGORY_SIGNATURE = "signature"

// FileUpload references a stored file (or an external media URL, for MMS
// photos) attached to an entity such as a job.
type FileUpload struct {
	ID               string     `gorm:"primary_key" json:"id"`
	Filename         string     `gorm:"not null" json:"filename"`
	OriginalFilename string     `gorm:"column:original_filename;not null" json:"original_filename"`
	FileSize         int        `gorm:"column:file_size" json:"file_size"` // bytes
	FileType         string     `gorm:"column:file_type" json:"file_type"` // mime type
	FilePath         string     `gorm:"column:file_path;not null" json:"file_path"`
	EntityType       string     `gorm:"column:entity_type;not null" json:"entity_type"` // job, customer
	EntityID         string     `gorm:"column:entity_id;not null;index" json:"entity_id"`
	Category         string     `json:"category"`
	Description      string     `json:"description"`
	UploadedBy       string     `gorm:"column:uploaded_by" json:"uploaded_by"`
	UploadedAt       *time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

func (file *FileUpload) BeforeCreate(scope *gorm.Scope) error {
	if file.ID == "" {
		return scope.SetColumn("ID", uuid.NewString())
	}
	return nil
}
