package store

import (
	"errors"
	"fmt"
	"time"

	"renthub/internal/models"

	"gorm.io/gorm"
)

// TenantStore 租客实体存储
type TenantStore struct {
	db *gorm.DB
}

// NewTenantStore 创建租客存储实例
func NewTenantStore(db *gorm.DB) *TenantStore {
	return &TenantStore{db: db}
}

// TenantWritable 租客可写字段投影
type TenantWritable struct {
	Name       string
	Email      string
	Phone      string
	LeaseStart time.Time
	LeaseEnd   time.Time
	PropertyID uint
	UpdatedAt  time.Time
}

// NewTenantWritable 从草稿提取可写字段
func NewTenantWritable(draft models.Tenant) TenantWritable {
	return TenantWritable{
		Name:       draft.Name,
		Email:      draft.Email,
		Phone:      draft.Phone,
		LeaseStart: draft.LeaseStart,
		LeaseEnd:   draft.LeaseEnd,
		PropertyID: draft.PropertyID,
		UpdatedAt:  time.Now(),
	}
}

// Values 转换为更新字段集合
func (w TenantWritable) Values() map[string]interface{} {
	return map[string]interface{}{
		"name":        w.Name,
		"email":       w.Email,
		"phone":       w.Phone,
		"lease_start": w.LeaseStart,
		"lease_end":   w.LeaseEnd,
		"property_id": w.PropertyID,
		"updated_at":  w.UpdatedAt,
	}
}

// ListByOwner 获取用户的全部租客，按创建时间倒序
func (s *TenantStore) ListByOwner(userID uint) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tenants).Error
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

// GetByOwner 根据ID获取用户的租客
func (s *TenantStore) GetByOwner(id, userID uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("租客不存在")
		}
		return nil, err
	}
	return &tenant, nil
}

// Insert 插入新租客，ID和时间戳由存储生成
func (s *TenantStore) Insert(tenant *models.Tenant) (*models.Tenant, error) {
	// 新记录不携带草稿里的ID和时间戳
	tenant.ID = 0
	tenant.CreatedAt = time.Time{}
	tenant.UpdatedAt = time.Time{}

	if err := s.db.Create(tenant).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

// Update 按ID更新用户的租客，只提交可写字段投影
func (s *TenantStore) Update(id, userID uint, fields TenantWritable) error {
	result := s.db.Model(&models.Tenant{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields.Values())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("租客不存在")
	}
	return nil
}

// Delete 按ID删除用户的租客
func (s *TenantStore) Delete(id, userID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Tenant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("租客不存在")
	}
	return nil
}
