package services

import (
	"errors"
	"fmt"
	"time"

	"renthub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService 用户服务
type UserService struct {
	db *gorm.DB
}

// NewUserService 创建用户服务实例
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register 注册新用户
func (s *UserService) Register(email, password, name string) (*models.User, error) {
	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("邮箱已被注册")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		Email:  email,
		Name:   name,
		Status: models.UserStatusActive,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail 根据邮箱获取用户
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("用户不存在")
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("用户不存在")
		}
		return nil, err
	}
	return &user, nil
}

// IsActive 用户是否可用
func (s *UserService) IsActive(user *models.User) bool {
	return user.Status == models.UserStatusActive
}

// UpdateLastLogin 更新最后登录时间
func (s *UserService) UpdateLastLogin(id uint) error {
	now := time.Now()
	return s.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_login_at", &now).Error
}

// CreateResetToken 创建密码重置令牌
func (s *UserService) CreateResetToken(email string, duration time.Duration) (*models.PasswordResetToken, error) {
	user, err := s.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(duration),
	}
	if err := s.db.Create(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

// ResetPassword 使用重置令牌设置新密码
func (s *UserService) ResetPassword(tokenString, newPassword string) error {
	var token models.PasswordResetToken
	err := s.db.Where("token = ? AND used_at IS NULL", tokenString).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("重置令牌无效或已使用")
		}
		return err
	}
	if time.Now().After(token.ExpiresAt) {
		return fmt.Errorf("重置令牌已过期")
	}

	var user models.User
	if err := s.db.First(&user, token.UserID).Error; err != nil {
		return err
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}

	// 更新密码并标记令牌已使用
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Update("password_hash", user.PasswordHash).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&models.PasswordResetToken{}).Where("id = ?", token.ID).
			Update("used_at", &now).Error
	})
}
