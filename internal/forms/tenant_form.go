package forms

import (
	"fmt"
	"strconv"
	"time"

	"renthub/internal/models"
	"renthub/internal/syncer"
)

// TenantForm 租客编辑表单控制器
//
// 草稿不带ID时提交走插入路径，带ID时走更新路径（由同步器分支）。
type TenantForm struct {
	state  State
	source *models.Tenant
	draft  models.Tenant
}

// NewTenantForm 创建租客表单控制器
func NewTenantForm() *TenantForm {
	return &TenantForm{state: StateClosed}
}

// Begin 进入编辑状态，source为nil时使用新建默认值
func (f *TenantForm) Begin(source *models.Tenant) {
	if source != nil {
		f.source = source
		f.draft = *source
	} else {
		f.source = nil
		f.draft = models.DefaultTenant()
	}
	f.state = StateEditing
}

// State 当前表单状态
func (f *TenantForm) State() State {
	return f.state
}

// Draft 当前草稿
func (f *TenantForm) Draft() models.Tenant {
	return f.draft
}

// SetField 修改草稿字段
func (f *TenantForm) SetField(name, value string) error {
	if f.state != StateEditing {
		return fmt.Errorf("表单未处于编辑状态")
	}

	switch name {
	case "name":
		f.draft.Name = value
	case "email":
		f.draft.Email = value
	case "phone":
		f.draft.Phone = value
	case "lease_start":
		t, err := time.Parse(dateLayout, value)
		if err != nil {
			return fmt.Errorf("日期格式错误: %s", value)
		}
		f.draft.LeaseStart = t
	case "lease_end":
		t, err := time.Parse(dateLayout, value)
		if err != nil {
			return fmt.Errorf("日期格式错误: %s", value)
		}
		f.draft.LeaseEnd = t
	case "property_id":
		f.draft.PropertyID = coerceUint(value)
	default:
		return fmt.Errorf("未知字段: %s", name)
	}
	return nil
}

// Submit 校验草稿并交给同步器保存
func (f *TenantForm) Submit(target *syncer.TenantSyncer) error {
	if f.state != StateEditing {
		return fmt.Errorf("表单未处于编辑状态")
	}

	if err := validate.Struct(&f.draft); err != nil {
		return fmt.Errorf("字段校验失败: %v", err)
	}
	// 租约结束不能早于开始
	if f.draft.LeaseEnd.Before(f.draft.LeaseStart) {
		return fmt.Errorf("租约结束日期不能早于开始日期")
	}

	if err := target.Save(f.draft); err != nil {
		return err
	}

	f.reset()
	return nil
}

// Cancel 放弃草稿，不调用同步器
func (f *TenantForm) Cancel() {
	f.reset()
}

func (f *TenantForm) reset() {
	f.state = StateClosed
	f.source = nil
	f.draft = models.Tenant{}
}

// coerceUint 文本转无符号整数，非法输入落到0
func coerceUint(value string) uint {
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}
