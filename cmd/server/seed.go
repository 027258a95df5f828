package main

import (
	"renthub/internal/database"
	"renthub/internal/models"
	"renthub/pkg/logger"
)

// seedData 初始化种子数据
//
// 没有任何用户时创建一个演示房东账号，方便首次部署后登录。
func seedData() error {
	db := database.GetDB()
	appLogger := logger.GetLogger()

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demo := &models.User{
		Email:  "demo@renthub.local",
		Name:   "Demo Landlord",
		Status: models.UserStatusActive,
	}
	if err := demo.SetPassword("demo123456"); err != nil {
		return err
	}
	if err := db.Create(demo).Error; err != nil {
		return err
	}

	appLogger.Warn("Created demo user demo@renthub.local / demo123456, change the password after first login")
	return nil
}
