package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// 通知级别
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelWarning = "warning"
)

// Event 通知事件（推送给前端展示，不要求确认）
type Event struct {
	ID        string `json:"id"`
	UserID    uint   `json:"user_id"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"created_at"`
}

// Notifier 通知发布接口
type Notifier interface {
	Publish(event Event)
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// RedisNotifier 基于Redis发布订阅的通知通道
type RedisNotifier struct {
	client *redis.Client
	prefix string
	log    *logrus.Logger
}

// NewRedisNotifier 创建Redis通知通道实例
func NewRedisNotifier(config *Config, log *logrus.Logger) *RedisNotifier {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "renthub:notify"
	}

	return &RedisNotifier{
		client: client,
		prefix: prefix,
		log:    log,
	}
}

// Publish 发布通知事件，失败只记录日志不向上传播
func (n *RedisNotifier) Publish(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.log.Errorf("序列化通知事件失败: %v", err)
		return
	}

	ctx := context.Background()
	if err := n.client.Publish(ctx, n.Channel(event.UserID), payload).Err(); err != nil {
		n.log.Errorf("发布通知事件失败: %v", err)
	}
}

// Subscribe 订阅指定用户的通知频道
func (n *RedisNotifier) Subscribe(ctx context.Context, userID uint) *redis.PubSub {
	return n.client.Subscribe(ctx, n.Channel(userID))
}

// Channel 用户通知频道名
func (n *RedisNotifier) Channel(userID uint) string {
	return fmt.Sprintf("%s:user:%d", n.prefix, userID)
}

// Ping 测试Redis连接
func (n *RedisNotifier) Ping() error {
	return n.client.Ping(context.Background()).Err()
}

// Close 关闭Redis连接
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
