package handlers

import (
	"strconv"
	"strings"

	"renthub/internal/forms"
	"renthub/internal/models"
	"renthub/internal/search"
	"renthub/internal/store"
	"renthub/internal/syncer"
	"renthub/pkg/jwt"
	"renthub/pkg/response"

	"github.com/gin-gonic/gin"
)

// PropertyHandler 房源处理器
type PropertyHandler struct {
	syncers          *syncer.Manager
	propertyStore    *store.PropertyStore
	maintenanceStore *store.MaintenanceStore
}

// NewPropertyHandler 创建房源处理器实例
func NewPropertyHandler(syncers *syncer.Manager, propertyStore *store.PropertyStore, maintenanceStore *store.MaintenanceStore) *PropertyHandler {
	return &PropertyHandler{
		syncers:          syncers,
		propertyStore:    propertyStore,
		maintenanceStore: maintenanceStore,
	}
}

// sessionFrom 从请求上下文取会话
func sessionFrom(c *gin.Context) syncer.Session {
	claims := c.MustGet("claims").(*jwt.JWTClaims)
	return syncer.Session{UserID: claims.UserID, Email: claims.Email}
}

// UpdatePropertyRequest 房源编辑表单提交
//
// 数值字段保持文本输入表示，由表单控制器做强制转换。
type UpdatePropertyRequest struct {
	Name            *string `json:"name"`
	Address         *string `json:"address"`
	AddressID       *string `json:"address_id"`
	Type            *string `json:"type"`
	Bedrooms        *string `json:"bedrooms"`
	Bathrooms       *string `json:"bathrooms"`
	Rent            *string `json:"rent"`
	ImageURL        *string `json:"image_url"`
	Status          *string `json:"status"`
	LastPaymentDate *string `json:"last_payment_date"`
}

// List 获取房源列表，支持关键词和状态过滤
func (h *PropertyHandler) List(c *gin.Context) {
	ps := h.syncers.Property(sessionFrom(c))
	if err := ps.Load(); err != nil {
		response.ServerError(c, "加载房源失败")
		return
	}

	query := c.Query("query")
	status := c.DefaultQuery("status", models.StatusAll)
	response.Success(c, search.Properties(ps.Records(), query, status))
}

// Create 用默认字段创建新房源并选中待编辑
func (h *PropertyHandler) Create(c *gin.Context) {
	ps := h.syncers.Property(sessionFrom(c))

	created, err := ps.Create(models.DefaultProperty())
	if err != nil {
		response.ServerError(c, "创建房源失败")
		return
	}

	response.Success(c, gin.H{
		"selected":   created,
		"properties": ps.Records(),
	})
}

// Update 提交房源编辑表单
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	session := sessionFrom(c)
	source, err := h.propertyStore.GetByOwner(uint(id), session.UserID)
	if err != nil {
		response.NotFound(c, "房源不存在")
		return
	}

	form := forms.NewPropertyForm()
	form.Begin(source)

	// 地址组件返回的格式化地址和地点ID成对覆盖
	if req.Address != nil && req.AddressID != nil {
		form.SetPlace(*req.Address, *req.AddressID)
		req.Address, req.AddressID = nil, nil
	}

	fields := map[string]*string{
		"name":              req.Name,
		"address":           req.Address,
		"address_id":        req.AddressID,
		"type":              req.Type,
		"bedrooms":          req.Bedrooms,
		"bathrooms":         req.Bathrooms,
		"rent":              req.Rent,
		"image_url":         req.ImageURL,
		"status":            req.Status,
		"last_payment_date": req.LastPaymentDate,
	}
	for name, value := range fields {
		if value == nil {
			continue
		}
		if err := form.SetField(name, *value); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	ps := h.syncers.Property(session)
	if err := form.Submit(ps); err != nil {
		if strings.HasPrefix(err.Error(), "字段校验失败") {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "更新房源失败")
		return
	}

	response.Success(c, ps.Records())
}

// ListNames 获取房源ID和名称（租客页面下拉用）
func (h *PropertyHandler) ListNames(c *gin.Context) {
	session := sessionFrom(c)
	names, err := h.propertyStore.ListNames(session.UserID)
	if err != nil {
		response.ServerError(c, "加载房源失败")
		return
	}
	response.Success(c, names)
}

// MaintenanceRequests 获取房源的维修请求列表
func (h *PropertyHandler) MaintenanceRequests(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	session := sessionFrom(c)
	requests, err := h.maintenanceStore.ListByProperty(uint(id), session.UserID)
	if err != nil {
		if err.Error() == "房源不存在" {
			response.NotFound(c, err.Error())
			return
		}
		response.ServerError(c, "加载维修请求失败")
		return
	}
	response.Success(c, requests)
}
