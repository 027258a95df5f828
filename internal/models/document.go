package models

import (
	"time"

	"gorm.io/datatypes"
)

// Document 文档模型
//
// 当前版本只声明和迁移该表，尚无业务流程写入。
type Document struct {
	BaseModel
	UserID uint `json:"user_id" gorm:"not null;index"`

	Title      string         `json:"title" gorm:"size:200;not null"`
	Type       string         `json:"type" gorm:"size:20"` // lease/contract/maintenance/invoice/other
	PropertyID *uint          `json:"property_id" gorm:"index"`
	TenantID   *uint          `json:"tenant_id" gorm:"index"`
	FileURL    string         `json:"file_url" gorm:"size:500"`
	UploadedAt time.Time      `json:"uploaded_at"`
	Status     string         `json:"status" gorm:"size:20;default:'active'"` // active/archived
	Tags       datatypes.JSON `json:"tags" gorm:"type:jsonb"`
}

// TableName 表名
func (d *Document) TableName() string {
	return "documents"
}
