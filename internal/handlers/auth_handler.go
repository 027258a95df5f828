package handlers

import (
	"time"

	"renthub/internal/models"
	"renthub/internal/services"
	"renthub/pkg/config"
	"renthub/pkg/jwt"
	"renthub/pkg/logger"
	"renthub/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *services.UserService
	jwtManager  *jwt.JWTManager
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtManager:  jwt.GetJWTManager(),
	}
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	User      UserInfo `json:"user"`
}

type UserInfo struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Signup 用户注册
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user, err := h.userService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		if err.Error() == "邮箱已被注册" {
			response.Conflict(c, err.Error())
			return
		}
		response.ServerError(c, "注册失败")
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		response.ServerError(c, "生成Token失败")
		return
	}

	response.Success(c, h.loginResponse(token, user))
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user, err := h.userService.GetByEmail(req.Email)
	if err != nil {
		response.Unauthorized(c, "邮箱或密码错误")
		return
	}

	if !h.userService.IsActive(user) {
		response.Unauthorized(c, "用户已被禁用")
		return
	}

	if !user.CheckPassword(req.Password) {
		response.Unauthorized(c, "邮箱或密码错误")
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		response.ServerError(c, "生成Token失败")
		return
	}

	// 更新最后登录时间，失败不影响登录流程
	if err := h.userService.UpdateLastLogin(user.ID); err != nil {
		logger.GetLogger().Warnf("更新最后登录时间失败: %v", err)
	}

	response.Success(c, h.loginResponse(token, user))
}

// ForgotPassword 发起密码重置
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	cfg := config.GetConfig()
	duration, err := time.ParseDuration(cfg.JWT.ResetDuration)
	if err != nil {
		duration = time.Hour
	}

	token, err := h.userService.CreateResetToken(req.Email, duration)
	if err != nil {
		// 不暴露邮箱是否存在
		logger.GetLogger().Infof("密码重置请求失败 email=%s: %v", req.Email, err)
	} else {
		// 邮件投递由外部协作方完成，这里只记录
		logger.GetLogger().Infof("密码重置令牌已创建 user_id=%d token=%s", token.UserID, token.Token)
	}

	response.SuccessWithMessage(c, "如果该邮箱已注册，重置链接将会发送", nil)
}

// ResetPassword 使用重置令牌设置新密码
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if err := h.userService.ResetPassword(req.Token, req.Password); err != nil {
		if err.Error() == "重置令牌无效或已使用" || err.Error() == "重置令牌已过期" {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "重置密码失败")
		return
	}

	response.SuccessWithMessage(c, "密码已重置", nil)
}

// Me 获取当前用户信息
func (h *AuthHandler) Me(c *gin.Context) {
	user := c.MustGet("user").(*models.User)
	response.Success(c, UserInfo{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
}

func (h *AuthHandler) loginResponse(token string, user *models.User) LoginResponse {
	return LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.jwtManager.GetTokenDuration()).Unix(),
		User: UserInfo{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	}
}
