package database

import (
	"sync"

	"renthub/pkg/config"
	"renthub/pkg/logger"
	"renthub/pkg/notify"
)

var (
	notifierInstance *notify.RedisNotifier
	notifierOnce     sync.Once
)

// GetNotifier 获取通知通道的单例实例
func GetNotifier() *notify.RedisNotifier {
	notifierOnce.Do(func() {
		cfg := config.GetConfig()
		notifierInstance = notify.NewRedisNotifier(&notify.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		}, logger.GetLogger())
	})
	return notifierInstance
}

// CloseNotifier 关闭Redis连接
func CloseNotifier() error {
	if notifierInstance != nil {
		return notifierInstance.Close()
	}
	return nil
}
