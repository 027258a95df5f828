package router

import (
	"renthub/internal/database"
	"renthub/internal/handlers"
	"renthub/internal/middleware"
	"renthub/internal/services"
	"renthub/internal/store"
	"renthub/internal/syncer"
	"renthub/pkg/logger"
	"renthub/pkg/response"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter() *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	// 注册路由
	registerRoutes(router)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine) {
	db := database.GetDB()
	notifier := database.GetNotifier()

	userService := services.NewUserService(db)
	propertyStore := store.NewPropertyStore(db)
	tenantStore := store.NewTenantStore(db)
	maintenanceStore := store.NewMaintenanceStore(db)
	syncers := syncer.NewManager(propertyStore, tenantStore, notifier, logger.GetLogger())

	auth := middleware.NewAuthMiddleware(userService)

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// 认证路由
		authHandler := handlers.NewAuthHandler(userService)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)                   // 用户注册
			authGroup.POST("/login", authHandler.Login)                     // 用户登录
			authGroup.POST("/forgot-password", authHandler.ForgotPassword)  // 发起密码重置
			authGroup.POST("/reset-password", authHandler.ResetPassword)    // 使用令牌重置密码
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)       // 当前用户信息
		}

		// 房源路由
		propertyHandler := handlers.NewPropertyHandler(syncers, propertyStore, maintenanceStore)
		properties := api.Group("/properties", auth.RequireLogin())
		{
			properties.GET("", propertyHandler.List)
			properties.POST("", propertyHandler.Create)
			properties.GET("/names", propertyHandler.ListNames)
			properties.PUT("/:id", propertyHandler.Update)
			properties.GET("/:id/maintenance-requests", propertyHandler.MaintenanceRequests)
		}

		// 租客路由
		tenantHandler := handlers.NewTenantHandler(syncers, tenantStore)
		tenants := api.Group("/tenants", auth.RequireLogin())
		{
			tenants.GET("", tenantHandler.List)
			tenants.POST("", tenantHandler.Create)
			tenants.PUT("/:id", tenantHandler.Update)
			tenants.POST("/:id/confirm-delete", tenantHandler.ConfirmDelete) // 删除确认第一阶段
			tenants.DELETE("/:id", tenantHandler.Delete)                     // 删除确认第二阶段
		}
	}

	// 通知推送（token走查询参数）
	notificationHandler := handlers.NewNotificationHandler(notifier)
	router.GET("/ws/notifications", notificationHandler.Stream)
}

// healthCheck 健康检查
func healthCheck(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// ping 连通性检查
func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
