package syncer

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"renthub/internal/models"
	"renthub/internal/store"
	"renthub/pkg/notify"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (f *fakeNotifier) Publish(e notify.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *fakeNotifier) byLevel(level string) []notify.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []notify.Event
	for _, e := range f.events {
		if e.Level == level {
			result = append(result, e)
		}
	}
	return result
}

type fakePropertyStore struct {
	mu        sync.Mutex
	records   []models.Property
	nextID    uint
	listErr   error
	insertErr error
	updateErr error

	listCalls   int
	insertCalls int
	updates     []store.PropertyWritable
	updatedIDs  []uint
}

func (f *fakePropertyStore) ListByOwner(userID uint) ([]models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := make([]models.Property, 0, len(f.records))
	for _, p := range f.records {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakePropertyStore) Insert(property *models.Property) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.nextID++
	property.ID = f.nextID
	property.CreatedAt = time.Now()
	f.records = append([]models.Property{*property}, f.records...)
	return property, nil
}

func (f *fakePropertyStore) Update(id, userID uint, fields store.PropertyWritable) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, fields)
	f.updatedIDs = append(f.updatedIDs, id)
	return nil
}

func newPropertySyncer(s PropertyStore, n notify.Notifier) *PropertySyncer {
	return NewPropertySyncer(s, n, Session{UserID: 1, Email: "demo@renthub.local"}, logrus.New())
}

func TestPropertyLoadIdempotent(t *testing.T) {
	fake := &fakePropertyStore{records: []models.Property{
		{BaseModel: models.BaseModel{ID: 2}, UserID: 1, Name: "Oakwood House"},
		{BaseModel: models.BaseModel{ID: 1}, UserID: 1, Name: "Sunset Apartments"},
	}}
	s := newPropertySyncer(fake, &fakeNotifier{})

	require.NoError(t, s.Load())
	first := s.Records()
	require.NoError(t, s.Load())
	assert.Equal(t, first, s.Records())
}

func TestPropertyLoadScopedToOwner(t *testing.T) {
	fake := &fakePropertyStore{records: []models.Property{
		{BaseModel: models.BaseModel{ID: 1}, UserID: 1, Name: "Mine"},
		{BaseModel: models.BaseModel{ID: 2}, UserID: 2, Name: "Theirs"},
	}}
	s := newPropertySyncer(fake, &fakeNotifier{})

	require.NoError(t, s.Load())
	records := s.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "Mine", records[0].Name)
}

func TestPropertyLoadFailureKeepsSnapshot(t *testing.T) {
	fake := &fakePropertyStore{records: []models.Property{
		{BaseModel: models.BaseModel{ID: 1}, UserID: 1, Name: "Sunset Apartments"},
	}}
	notifier := &fakeNotifier{}
	s := newPropertySyncer(fake, notifier)

	require.NoError(t, s.Load())
	require.Len(t, s.Records(), 1)

	fake.listErr = fmt.Errorf("store unavailable")
	assert.Error(t, s.Load())
	// 原快照保持不变，并发出失败通知
	assert.Len(t, s.Records(), 1)
	assert.NotEmpty(t, notifier.byLevel(notify.LevelError))
}

func TestPropertyCreateSelectsInsertedRecord(t *testing.T) {
	fake := &fakePropertyStore{}
	s := newPropertySyncer(fake, &fakeNotifier{})

	created, err := s.Create(models.DefaultProperty())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)

	selected := s.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, created.ID, selected.ID)
	assert.Equal(t, uint(1), created.UserID)
	// 创建成功后触发了刷新
	assert.GreaterOrEqual(t, fake.listCalls, 1)
}

func TestPropertyCreateWithoutSession(t *testing.T) {
	fake := &fakePropertyStore{}
	s := NewPropertySyncer(fake, &fakeNotifier{}, Session{}, logrus.New())

	_, err := s.Create(models.DefaultProperty())
	assert.Error(t, err)
	// 未认证时不应发出任何存储请求
	assert.Zero(t, fake.insertCalls)
}

func TestPropertyCreateFailureLeavesNothingSelected(t *testing.T) {
	fake := &fakePropertyStore{insertErr: fmt.Errorf("insert rejected")}
	notifier := &fakeNotifier{}
	s := newPropertySyncer(fake, notifier)

	_, err := s.Create(models.DefaultProperty())
	assert.Error(t, err)
	assert.Nil(t, s.Selected())
	assert.NotEmpty(t, notifier.byLevel(notify.LevelError))
}

func TestPropertySaveStripsJoinFields(t *testing.T) {
	fake := &fakePropertyStore{}
	s := newPropertySyncer(fake, &fakeNotifier{})

	draft := models.Property{
		BaseModel: models.BaseModel{ID: 7},
		UserID:    1,
		Name:      "Oakwood House",
		Status:    models.PropertyStatusRented,
		MaintenanceRequests: []models.MaintenanceRequest{
			{Description: "Leaking faucet", Status: models.MaintenanceStatusPending},
		},
	}
	require.NoError(t, s.Save(draft))

	require.Len(t, fake.updates, 1)
	values := fake.updates[0].Values()
	// 联查字段绝不进入提交的字段集合
	_, present := values["maintenance_requests"]
	assert.False(t, present)
	assert.Equal(t, "Oakwood House", values["name"])
	// 提交带新的更新时间
	assert.WithinDuration(t, time.Now(), values["updated_at"].(time.Time), time.Minute)
	assert.Equal(t, uint(7), fake.updatedIDs[0])
}

func TestPropertySaveSuccessClearsSelection(t *testing.T) {
	fake := &fakePropertyStore{}
	s := newPropertySyncer(fake, &fakeNotifier{})

	draft := models.Property{BaseModel: models.BaseModel{ID: 3}, Name: "Sunset"}
	s.Select(&draft)
	require.NoError(t, s.Save(draft))

	assert.Nil(t, s.Selected())
	assert.GreaterOrEqual(t, fake.listCalls, 1)
}

func TestPropertySaveFailureKeepsSelection(t *testing.T) {
	fake := &fakePropertyStore{updateErr: fmt.Errorf("update rejected")}
	notifier := &fakeNotifier{}
	s := newPropertySyncer(fake, notifier)

	draft := models.Property{BaseModel: models.BaseModel{ID: 3}, Name: "Sunset"}
	s.Select(&draft)
	assert.Error(t, s.Save(draft))

	// 失败时草稿保持选中以便重试
	assert.NotNil(t, s.Selected())
	assert.NotEmpty(t, notifier.byLevel(notify.LevelError))
}

// scriptedPropertyStore 按调用顺序返回预设结果，用于模拟慢响应
type scriptedPropertyStore struct {
	fakePropertyStore
	mu      sync.Mutex
	calls   int
	scripts []func() ([]models.Property, error)
}

func (s *scriptedPropertyStore) ListByOwner(userID uint) ([]models.Property, error) {
	s.mu.Lock()
	fn := s.scripts[s.calls]
	s.calls++
	s.mu.Unlock()
	return fn()
}

func TestPropertyStaleLoadDiscarded(t *testing.T) {
	release := make(chan struct{})
	stale := []models.Property{{BaseModel: models.BaseModel{ID: 1}, UserID: 1, Name: "Stale"}}
	fresh := []models.Property{{BaseModel: models.BaseModel{ID: 2}, UserID: 1, Name: "Fresh"}}

	scripted := &scriptedPropertyStore{scripts: []func() ([]models.Property, error){
		func() ([]models.Property, error) {
			<-release
			return stale, nil
		},
		func() ([]models.Property, error) {
			return fresh, nil
		},
	}}
	s := newPropertySyncer(scripted, &fakeNotifier{})

	done := make(chan struct{})
	go func() {
		_ = s.Load() // 慢的第一次加载
		close(done)
	}()

	// 等第一次加载进入存储调用后发起第二次
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, s.Load())
	close(release)
	<-done

	// 过期的第一次响应被丢弃，保留较新的结果
	records := s.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "Fresh", records[0].Name)
}
