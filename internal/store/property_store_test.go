package store

import (
	"testing"
	"time"

	"renthub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.MaintenanceRequest{},
		&models.Tenant{},
	))
	return db
}

func createProperty(t *testing.T, db *gorm.DB, userID uint, name string, createdAt time.Time) *models.Property {
	t.Helper()
	property := &models.Property{
		UserID:    userID,
		Name:      name,
		Address:   "123 Maple St",
		Type:      models.PropertyTypeApartment,
		Bedrooms:  2,
		Bathrooms: 1,
		Rent:      1500,
		Status:    models.PropertyStatusAvailable,
	}
	property.CreatedAt = createdAt
	require.NoError(t, db.Create(property).Error)
	return property
}

func TestPropertyStoreListByOwner(t *testing.T) {
	db := newTestDB(t)
	s := NewPropertyStore(db)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	createProperty(t, db, 1, "Oldest", base)
	createProperty(t, db, 1, "Newest", base.Add(2*time.Hour))
	createProperty(t, db, 1, "Middle", base.Add(time.Hour))
	createProperty(t, db, 2, "Other Owner", base.Add(3*time.Hour))

	properties, err := s.ListByOwner(1)
	require.NoError(t, err)
	require.Len(t, properties, 3)

	// 按创建时间倒序，且只包含本用户的房源
	assert.Equal(t, "Newest", properties[0].Name)
	assert.Equal(t, "Middle", properties[1].Name)
	assert.Equal(t, "Oldest", properties[2].Name)
}

func TestPropertyStoreListByOwnerPreloadsMaintenance(t *testing.T) {
	db := newTestDB(t)
	s := NewPropertyStore(db)

	property := createProperty(t, db, 1, "Sunset Apartments", time.Now())
	require.NoError(t, db.Create(&models.MaintenanceRequest{
		PropertyID:  property.ID,
		Description: "Leaking faucet",
		Status:      models.MaintenanceStatusPending,
		Priority:    models.MaintenancePriorityHigh,
	}).Error)

	properties, err := s.ListByOwner(1)
	require.NoError(t, err)
	require.Len(t, properties, 1)
	require.Len(t, properties[0].MaintenanceRequests, 1)
	assert.Equal(t, "Leaking faucet", properties[0].MaintenanceRequests[0].Description)
}

func TestPropertyStoreGetByOwner(t *testing.T) {
	db := newTestDB(t)
	s := NewPropertyStore(db)

	property := createProperty(t, db, 1, "Sunset Apartments", time.Now())

	got, err := s.GetByOwner(property.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, property.ID, got.ID)

	// 其他用户看不到
	_, err = s.GetByOwner(property.ID, 2)
	require.Error(t, err)
	assert.EqualError(t, err, "房源不存在")
}

func TestPropertyStoreListNames(t *testing.T) {
	db := newTestDB(t)
	s := NewPropertyStore(db)

	createProperty(t, db, 1, "Oakwood House", time.Now())
	createProperty(t, db, 1, "Cedar Flats", time.Now())
	createProperty(t, db, 2, "Not Mine", time.Now())

	names, err := s.ListNames(1)
	require.NoError(t, err)
	require.Len(t, names, 2)
	// 按名称排序
	assert.Equal(t, "Cedar Flats", names[0].Name)
	assert.Equal(t, "Oakwood House", names[1].Name)
}

func TestPropertyStoreInsert(t *testing.T) {
	db := newTestDB(t)
	s := NewPropertyStore(db)

	property := models.DefaultProperty()
	property.UserID = 1

	stored, err := s.Insert(&property)
	require.NoError(t, err)
	assert.NotZero(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestPropertyStoreUpdate(t *testing.T) {
	db := newTestDB(t)
	s := NewPropertyStore(db)

	property := createProperty(t, db, 1, "Sunset Apartments", time.Now())
	require.NoError(t, db.Create(&models.MaintenanceRequest{
		PropertyID:  property.ID,
		Description: "Broken heater",
		Status:      models.MaintenanceStatusPending,
	}).Error)

	draft := *property
	draft.Name = "Sunset Apartments Renovated"
	draft.Status = models.PropertyStatusRented
	draft.Rent = 1850
	// 草稿携带联查数据也不会影响更新
	draft.MaintenanceRequests = nil

	require.NoError(t, s.Update(property.ID, 1, NewPropertyWritable(draft)))

	got, err := s.GetByOwner(property.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Sunset Apartments Renovated", got.Name)
	assert.Equal(t, models.PropertyStatusRented, got.Status)
	assert.Equal(t, float64(1850), got.Rent)
	// 维修请求不受更新影响
	assert.Len(t, got.MaintenanceRequests, 1)
}

func TestPropertyStoreUpdateWrongOwner(t *testing.T) {
	db := newTestDB(t)
	s := NewPropertyStore(db)

	property := createProperty(t, db, 1, "Sunset Apartments", time.Now())

	err := s.Update(property.ID, 2, NewPropertyWritable(*property))
	require.Error(t, err)
	assert.EqualError(t, err, "房源不存在")
}
