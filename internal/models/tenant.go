package models

import (
	"time"
)

// Tenant 租客模型
type Tenant struct {
	BaseModel
	UserID uint `json:"user_id" gorm:"not null;index"`

	Name       string    `json:"name" gorm:"size:100;not null" validate:"required"`
	Email      string    `json:"email" gorm:"size:100;not null" validate:"required,email"`
	Phone      string    `json:"phone" gorm:"size:20" validate:"required"`
	LeaseStart time.Time `json:"lease_start" gorm:"type:date" validate:"required"`
	LeaseEnd   time.Time `json:"lease_end" gorm:"type:date" validate:"required"`
	PropertyID uint      `json:"property_id" gorm:"index" validate:"required"`
}

// TableName 表名
func (t *Tenant) TableName() string {
	return "tenants"
}
