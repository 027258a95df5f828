package store

import (
	"errors"
	"fmt"
	"time"

	"renthub/internal/models"

	"gorm.io/gorm"
)

// PropertyStore 房源实体存储
type PropertyStore struct {
	db *gorm.DB
}

// NewPropertyStore 创建房源存储实例
func NewPropertyStore(db *gorm.DB) *PropertyStore {
	return &PropertyStore{db: db}
}

// PropertyWritable 房源可写字段投影
//
// 更新只允许通过该投影提交，联查出来的维修请求等只读字段在类型层面就进不了UPDATE。
type PropertyWritable struct {
	Name            string
	Address         string
	AddressID       string
	Type            string
	Bedrooms        int
	Bathrooms       int
	Rent            float64
	ImageURL        string
	Status          string
	LastPaymentDate *time.Time
	UpdatedAt       time.Time
}

// NewPropertyWritable 从草稿提取可写字段
func NewPropertyWritable(draft models.Property) PropertyWritable {
	return PropertyWritable{
		Name:            draft.Name,
		Address:         draft.Address,
		AddressID:       draft.AddressID,
		Type:            draft.Type,
		Bedrooms:        draft.Bedrooms,
		Bathrooms:       draft.Bathrooms,
		Rent:            draft.Rent,
		ImageURL:        draft.ImageURL,
		Status:          draft.Status,
		LastPaymentDate: draft.LastPaymentDate,
		UpdatedAt:       time.Now(),
	}
}

// Values 转换为更新字段集合
func (w PropertyWritable) Values() map[string]interface{} {
	return map[string]interface{}{
		"name":              w.Name,
		"address":           w.Address,
		"address_id":        w.AddressID,
		"type":              w.Type,
		"bedrooms":          w.Bedrooms,
		"bathrooms":         w.Bathrooms,
		"rent":              w.Rent,
		"image_url":         w.ImageURL,
		"status":            w.Status,
		"last_payment_date": w.LastPaymentDate,
		"updated_at":        w.UpdatedAt,
	}
}

// PropertyName 房源下拉选项（租客页面联动用）
type PropertyName struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ListByOwner 获取用户的全部房源，联查维修请求，按创建时间倒序
func (s *PropertyStore) ListByOwner(userID uint) ([]models.Property, error) {
	var properties []models.Property
	err := s.db.Preload("MaintenanceRequests").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// GetByOwner 根据ID获取用户的房源
func (s *PropertyStore) GetByOwner(id, userID uint) (*models.Property, error) {
	var property models.Property
	err := s.db.Preload("MaintenanceRequests").
		Where("id = ? AND user_id = ?", id, userID).
		First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("房源不存在")
		}
		return nil, err
	}
	return &property, nil
}

// ListNames 获取用户房源的ID和名称
func (s *PropertyStore) ListNames(userID uint) ([]PropertyName, error) {
	var names []PropertyName
	err := s.db.Model(&models.Property{}).
		Where("user_id = ?", userID).
		Order("name").
		Find(&names).Error
	return names, err
}

// Insert 插入新房源并返回存储后的记录（含生成的ID和时间戳）
func (s *PropertyStore) Insert(property *models.Property) (*models.Property, error) {
	if err := s.db.Create(property).Error; err != nil {
		return nil, err
	}
	return property, nil
}

// Update 按ID更新用户的房源，只提交可写字段投影
func (s *PropertyStore) Update(id, userID uint, fields PropertyWritable) error {
	result := s.db.Model(&models.Property{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields.Values())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("房源不存在")
	}
	return nil
}
