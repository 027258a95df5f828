package forms

import (
	"fmt"
	"testing"
	"time"

	"renthub/internal/models"
	"renthub/internal/store"
	"renthub/internal/syncer"
	"renthub/pkg/notify"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopNotifier struct{}

func (nopNotifier) Publish(notify.Event) {}

type stubPropertyStore struct {
	updateErr error
	updates   []store.PropertyWritable
}

func (s *stubPropertyStore) ListByOwner(userID uint) ([]models.Property, error) {
	return nil, nil
}

func (s *stubPropertyStore) Insert(property *models.Property) (*models.Property, error) {
	property.ID = 1
	return property, nil
}

func (s *stubPropertyStore) Update(id, userID uint, fields store.PropertyWritable) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates = append(s.updates, fields)
	return nil
}

func testPropertySyncer(s *stubPropertyStore) *syncer.PropertySyncer {
	return syncer.NewPropertySyncer(s, nopNotifier{}, syncer.Session{UserID: 1}, logrus.New())
}

func editableProperty() *models.Property {
	return &models.Property{
		BaseModel: models.BaseModel{ID: 7},
		UserID:    1,
		Name:      "Sunset Apartments",
		Address:   "123 Maple St",
		Type:      models.PropertyTypeApartment,
		Bedrooms:  2,
		Bathrooms: 1,
		Rent:      1500,
		Status:    models.PropertyStatusAvailable,
	}
}

func TestPropertyFormBeginClonesSource(t *testing.T) {
	source := editableProperty()
	form := NewPropertyForm()
	form.Begin(source)

	require.NoError(t, form.SetField("name", "Renamed"))

	// 修改只作用于草稿，来源记录不被触碰
	assert.Equal(t, "Sunset Apartments", source.Name)
	assert.Equal(t, "Renamed", form.Draft().Name)
	assert.Equal(t, StateEditing, form.State())
}

func TestPropertyFormBeginWithoutSource(t *testing.T) {
	form := NewPropertyForm()
	form.Begin(nil)

	draft := form.Draft()
	assert.Equal(t, "New Property", draft.Name)
	assert.Equal(t, models.PropertyTypeApartment, draft.Type)
	assert.Equal(t, models.PropertyStatusAvailable, draft.Status)
}

func TestPropertyFormNumericCoercion(t *testing.T) {
	form := NewPropertyForm()
	form.Begin(editableProperty())

	require.NoError(t, form.SetField("bedrooms", "3"))
	assert.Equal(t, 3, form.Draft().Bedrooms)

	// 非法输入落到0
	require.NoError(t, form.SetField("bedrooms", "abc"))
	assert.Equal(t, 0, form.Draft().Bedrooms)

	require.NoError(t, form.SetField("bathrooms", "-2"))
	assert.Equal(t, 0, form.Draft().Bathrooms)

	require.NoError(t, form.SetField("rent", "1850.50"))
	assert.Equal(t, 1850.50, form.Draft().Rent)

	require.NoError(t, form.SetField("rent", "not a number"))
	assert.Equal(t, float64(0), form.Draft().Rent)
}

func TestPropertyFormLastPaymentDate(t *testing.T) {
	form := NewPropertyForm()
	form.Begin(editableProperty())

	require.NoError(t, form.SetField("last_payment_date", "2026-08-01"))
	require.NotNil(t, form.Draft().LastPaymentDate)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *form.Draft().LastPaymentDate)

	// 清空输入回到未支付状态
	require.NoError(t, form.SetField("last_payment_date", ""))
	assert.Nil(t, form.Draft().LastPaymentDate)

	assert.Error(t, form.SetField("last_payment_date", "01/08/2026"))
}

func TestPropertyFormSetPlace(t *testing.T) {
	form := NewPropertyForm()
	form.Begin(editableProperty())

	form.SetPlace("789 Pine Rd, Springfield", "place-id-123")

	draft := form.Draft()
	assert.Equal(t, "789 Pine Rd, Springfield", draft.Address)
	assert.Equal(t, "place-id-123", draft.AddressID)
}

func TestPropertyFormUnknownField(t *testing.T) {
	form := NewPropertyForm()
	form.Begin(editableProperty())

	assert.Error(t, form.SetField("maintenance_requests", "x"))
}

func TestPropertyFormRequiresEditingState(t *testing.T) {
	form := NewPropertyForm()

	assert.Error(t, form.SetField("name", "x"))
	assert.Error(t, form.Submit(testPropertySyncer(&stubPropertyStore{})))
}

func TestPropertyFormSubmitValidation(t *testing.T) {
	stub := &stubPropertyStore{}
	form := NewPropertyForm()
	form.Begin(editableProperty())
	require.NoError(t, form.SetField("name", ""))

	err := form.Submit(testPropertySyncer(stub))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "字段校验失败")
	// 校验失败不发出存储请求，表单保持编辑状态
	assert.Empty(t, stub.updates)
	assert.Equal(t, StateEditing, form.State())
}

func TestPropertyFormSubmitSuccess(t *testing.T) {
	stub := &stubPropertyStore{}
	form := NewPropertyForm()
	form.Begin(editableProperty())
	require.NoError(t, form.SetField("status", models.PropertyStatusRented))

	require.NoError(t, form.Submit(testPropertySyncer(stub)))

	require.Len(t, stub.updates, 1)
	assert.Equal(t, models.PropertyStatusRented, stub.updates[0].Values()["status"])
	assert.Equal(t, StateClosed, form.State())
}

func TestPropertyFormSubmitFailureKeepsEditing(t *testing.T) {
	stub := &stubPropertyStore{updateErr: fmt.Errorf("update rejected")}
	form := NewPropertyForm()
	form.Begin(editableProperty())

	assert.Error(t, form.Submit(testPropertySyncer(stub)))
	assert.Equal(t, StateEditing, form.State())
}

func TestPropertyFormCancel(t *testing.T) {
	stub := &stubPropertyStore{}
	form := NewPropertyForm()
	form.Begin(editableProperty())
	require.NoError(t, form.SetField("name", "Changed"))

	form.Cancel()

	// 取消不触发任何保存
	assert.Empty(t, stub.updates)
	assert.Equal(t, StateClosed, form.State())
}
