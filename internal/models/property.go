package models

import (
	"time"
)

// Property 房源模型
type Property struct {
	BaseModel
	UserID uint `json:"user_id" gorm:"not null;index"`

	Name      string  `json:"name" gorm:"size:200;not null" validate:"required"`
	Address   string  `json:"address" gorm:"size:500"`
	AddressID string  `json:"address_id" gorm:"size:100"` // 地址组件返回的外部地点ID
	Type      string  `json:"type" gorm:"size:20;default:'apartment'" validate:"required,oneof=apartment house condo"`
	Bedrooms  int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms int     `json:"bathrooms" validate:"gte=0"`
	Rent      float64 `json:"rent" validate:"gte=0"`
	ImageURL  string  `json:"image_url" gorm:"size:500"`
	Status    string  `json:"status" gorm:"size:20;default:'Available';index" validate:"required,oneof=Available Rented Maintenance"`

	LastPaymentDate *time.Time `json:"last_payment_date"`

	// 关联的维修请求（只读联查，不随房源写入）
	MaintenanceRequests []MaintenanceRequest `json:"maintenance_requests,omitempty" gorm:"foreignKey:PropertyID" validate:"-"`
}

// TableName 表名
func (p *Property) TableName() string {
	return "properties"
}

// 房源类型常量
const (
	PropertyTypeApartment = "apartment"
	PropertyTypeHouse     = "house"
	PropertyTypeCondo     = "condo"
)

// 房源状态常量
const (
	PropertyStatusAvailable   = "Available"
	PropertyStatusRented      = "Rented"
	PropertyStatusMaintenance = "Maintenance"
)

// StatusAll 状态过滤器的哨兵值，表示不过滤
const StatusAll = "all"

// MaintenanceRequest 维修请求模型（由外部协作方创建和变更，本服务只读）
type MaintenanceRequest struct {
	BaseModel
	PropertyID  uint   `json:"property_id" gorm:"not null;index"`
	Description string `json:"description" gorm:"type:text"`
	Status      string `json:"status" gorm:"size:20;default:'pending';index"`
	Priority    string `json:"priority" gorm:"size:10;default:'medium'"`
}

// TableName 表名
func (m *MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

// 维修请求状态常量
const (
	MaintenanceStatusPending    = "pending"
	MaintenanceStatusInProgress = "in-progress"
	MaintenanceStatusCompleted  = "completed"
)

// 维修请求优先级常量
const (
	MaintenancePriorityLow    = "low"
	MaintenancePriorityMedium = "medium"
	MaintenancePriorityHigh   = "high"
)
