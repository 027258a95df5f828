package handlers

import (
	"strconv"
	"strings"

	"renthub/internal/forms"
	"renthub/internal/search"
	"renthub/internal/store"
	"renthub/internal/syncer"
	"renthub/pkg/response"

	"github.com/gin-gonic/gin"
)

// TenantHandler 租客处理器
type TenantHandler struct {
	syncers     *syncer.Manager
	tenantStore *store.TenantStore
}

// NewTenantHandler 创建租客处理器实例
func NewTenantHandler(syncers *syncer.Manager, tenantStore *store.TenantStore) *TenantHandler {
	return &TenantHandler{
		syncers:     syncers,
		tenantStore: tenantStore,
	}
}

// SaveTenantRequest 租客编辑表单提交
type SaveTenantRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	LeaseStart *string `json:"lease_start"`
	LeaseEnd   *string `json:"lease_end"`
	PropertyID *string `json:"property_id"`
}

// List 获取租客列表，支持关键词过滤
func (h *TenantHandler) List(c *gin.Context) {
	ts := h.syncers.Tenant(sessionFrom(c))
	if err := ts.Load(); err != nil {
		response.ServerError(c, "加载租客失败")
		return
	}

	response.Success(c, search.Tenants(ts.Records(), c.Query("query")))
}

// Create 新建租客（插入路径，草稿不携带ID）
func (h *TenantHandler) Create(c *gin.Context) {
	var req SaveTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	form := forms.NewTenantForm()
	form.Begin(nil)
	h.save(c, form, req)
}

// Update 编辑已有租客（更新路径）
func (h *TenantHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req SaveTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	session := sessionFrom(c)
	source, err := h.tenantStore.GetByOwner(uint(id), session.UserID)
	if err != nil {
		response.NotFound(c, "租客不存在")
		return
	}

	form := forms.NewTenantForm()
	form.Begin(source)
	h.save(c, form, req)
}

// save 应用表单字段并提交
func (h *TenantHandler) save(c *gin.Context, form *forms.TenantForm, req SaveTenantRequest) {
	fields := map[string]*string{
		"name":        req.Name,
		"email":       req.Email,
		"phone":       req.Phone,
		"lease_start": req.LeaseStart,
		"lease_end":   req.LeaseEnd,
		"property_id": req.PropertyID,
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

	ts := h.syncers.Tenant(sessionFrom(c))
	if err := form.Submit(ts); err != nil {
		if strings.HasPrefix(err.Error(), "字段校验失败") || err.Error() == "租约结束日期不能早于开始日期" {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "保存租客失败")
		return
	}

	response.Success(c, ts.Records())
}

// ConfirmDelete 标记租客待删除（删除确认的第一阶段）
func (h *TenantHandler) ConfirmDelete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	session := sessionFrom(c)
	if _, err := h.tenantStore.GetByOwner(uint(id), session.UserID); err != nil {
		response.NotFound(c, "租客不存在")
		return
	}

	ts := h.syncers.Tenant(session)
	ts.MarkForDeletion(uint(id))
	response.SuccessWithMessage(c, "已标记待删除，请确认删除", nil)
}

// Delete 删除租客（必须先调用ConfirmDelete）
func (h *TenantHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	ts := h.syncers.Tenant(sessionFrom(c))
	if err := ts.Delete(uint(id)); err != nil {
		if err.Error() == "删除前需要先确认" {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "删除租客失败")
		return
	}

	response.Success(c, ts.Records())
}
