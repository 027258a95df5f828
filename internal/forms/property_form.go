package forms

import (
	"fmt"
	"strconv"
	"time"

	"renthub/internal/models"
	"renthub/internal/syncer"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// State 表单状态
type State int

const (
	StateClosed State = iota
	StateEditing
)

// 日期输入格式
const dateLayout = "2006-01-02"

// PropertyForm 房源编辑表单控制器
//
// 进入编辑时克隆来源记录为草稿，字段修改只作用于草稿，来源记录不被触碰。
// 数值字段每次修改都从文本输入做强制转换，非法输入转为零值。
type PropertyForm struct {
	state  State
	source *models.Property
	draft  models.Property
}

// NewPropertyForm 创建房源表单控制器
func NewPropertyForm() *PropertyForm {
	return &PropertyForm{state: StateClosed}
}

// Begin 进入编辑状态，source为nil时使用新建默认值
func (f *PropertyForm) Begin(source *models.Property) {
	if source != nil {
		f.source = source
		f.draft = *source
	} else {
		f.source = nil
		f.draft = models.DefaultProperty()
	}
	f.state = StateEditing
}

// State 当前表单状态
func (f *PropertyForm) State() State {
	return f.state
}

// Draft 当前草稿
func (f *PropertyForm) Draft() models.Property {
	return f.draft
}

// SetField 修改草稿字段，数值字段从文本表示强制转换
func (f *PropertyForm) SetField(name, value string) error {
	if f.state != StateEditing {
		return fmt.Errorf("表单未处于编辑状态")
	}

	switch name {
	case "name":
		f.draft.Name = value
	case "address":
		f.draft.Address = value
	case "address_id":
		f.draft.AddressID = value
	case "type":
		f.draft.Type = value
	case "image_url":
		f.draft.ImageURL = value
	case "status":
		f.draft.Status = value
	case "bedrooms":
		f.draft.Bedrooms = coerceInt(value)
	case "bathrooms":
		f.draft.Bathrooms = coerceInt(value)
	case "rent":
		f.draft.Rent = coerceFloat(value)
	case "last_payment_date":
		if value == "" {
			f.draft.LastPaymentDate = nil
			return nil
		}
		t, err := time.Parse(dateLayout, value)
		if err != nil {
			return fmt.Errorf("日期格式错误: %s", value)
		}
		f.draft.LastPaymentDate = &t
	default:
		return fmt.Errorf("未知字段: %s", name)
	}
	return nil
}

// SetPlace 地址组件回填，格式化地址和地点ID作为原子对同时覆盖
func (f *PropertyForm) SetPlace(address, placeID string) {
	if f.state != StateEditing {
		return
	}
	f.draft.Address = address
	f.draft.AddressID = placeID
}

// Submit 校验草稿并交给同步器保存
//
// 保存失败时表单保持编辑状态以便重试。
func (f *PropertyForm) Submit(target *syncer.PropertySyncer) error {
	if f.state != StateEditing {
		return fmt.Errorf("表单未处于编辑状态")
	}

	if err := validate.Struct(&f.draft); err != nil {
		return fmt.Errorf("字段校验失败: %v", err)
	}

	if err := target.Save(f.draft); err != nil {
		return err
	}

	f.reset()
	return nil
}

// Cancel 放弃草稿，不调用同步器
func (f *PropertyForm) Cancel() {
	f.reset()
}

func (f *PropertyForm) reset() {
	f.state = StateClosed
	f.source = nil
	f.draft = models.Property{}
}

// coerceInt 文本转整数，非法输入和负数浏览器输入框一样落到0
func coerceInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// coerceFloat 文本转数值
func coerceFloat(value string) float64 {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
