package store

import (
	"errors"
	"fmt"

	"renthub/internal/models"

	"gorm.io/gorm"
)

// MaintenanceStore 维修请求存储（本服务只读）
type MaintenanceStore struct {
	db *gorm.DB
}

// NewMaintenanceStore 创建维修请求存储实例
func NewMaintenanceStore(db *gorm.DB) *MaintenanceStore {
	return &MaintenanceStore{db: db}
}

// ListByProperty 获取指定房源的维修请求，校验房源归属
func (s *MaintenanceStore) ListByProperty(propertyID, userID uint) ([]models.MaintenanceRequest, error) {
	var property models.Property
	err := s.db.Select("id").
		Where("id = ? AND user_id = ?", propertyID, userID).
		First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("房源不存在")
		}
		return nil, err
	}

	var requests []models.MaintenanceRequest
	err = s.db.Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
