package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"renthub/pkg/config"
	"renthub/pkg/jwt"
	"renthub/pkg/logger"
	"renthub/pkg/notify"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// NotificationHandler 通知推送处理器
//
// 把当前用户的通知事件通过WebSocket推给前端，单向推送不要求确认。
type NotificationHandler struct {
	upgrader   websocket.Upgrader
	notifier   *notify.RedisNotifier
	jwtManager *jwt.JWTManager
	log        *logrus.Logger
}

// NewNotificationHandler 创建通知推送处理器
func NewNotificationHandler(notifier *notify.RedisNotifier) *NotificationHandler {
	cfg := config.GetConfig()
	allowedOrigins := cfg.CORS.AllowOrigins

	return &NotificationHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// 同源请求没有Origin头
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || matchOrigin(origin, allowed) {
						return true
					}
				}
				logger.GetLogger().Warnf("WebSocket连接被拒绝，非法Origin: %s", origin)
				return false
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		notifier:   notifier,
		jwtManager: jwt.GetJWTManager(),
		log:        logger.GetLogger(),
	}
}

// Stream 推送当前用户的通知事件
func (h *NotificationHandler) Stream(c *gin.Context) {
	// WebSocket不支持自定义header，token从查询参数取
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "缺少认证token"})
		return
	}

	claims, err := h.jwtManager.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token无效或已过期"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorf("WebSocket升级失败: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := h.notifier.Subscribe(ctx, claims.UserID)
	defer sub.Close()
	events := sub.Channel()

	// 读协程只用来感知客户端断开
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// matchOrigin Origin匹配，支持 *.example.com 形式的通配
func matchOrigin(origin, allowed string) bool {
	if origin == allowed {
		return true
	}
	if strings.HasPrefix(allowed, "*.") {
		return strings.HasSuffix(origin, allowed[1:])
	}
	return false
}
