package syncer

import (
	"fmt"
	"sync"

	"renthub/internal/models"
	"renthub/internal/store"
	"renthub/pkg/notify"

	"github.com/sirupsen/logrus"
)

// PropertyStore 房源同步器依赖的存储接口
type PropertyStore interface {
	ListByOwner(userID uint) ([]models.Property, error)
	Insert(property *models.Property) (*models.Property, error)
	Update(id, userID uint, fields store.PropertyWritable) error
}

// PropertySyncer 房源记录同步器
//
// 持有本地列表快照和当前选中的草稿，所有写操作成功后通过Load整体刷新，
// 不做增量修补（以简单换一致，见Load）。
type PropertySyncer struct {
	store    PropertyStore
	notifier notify.Notifier
	session  Session
	log      *logrus.Logger

	mu       sync.Mutex
	loadGen  uint64
	records  []models.Property
	selected *models.Property
}

// NewPropertySyncer 创建房源同步器
func NewPropertySyncer(propertyStore PropertyStore, notifier notify.Notifier, session Session, log *logrus.Logger) *PropertySyncer {
	return &PropertySyncer{
		store:    propertyStore,
		notifier: notifier,
		session:  session,
		log:      log,
	}
}

// Load 加载用户的全部房源（含维修请求联查）并替换本地快照
//
// 加载失败时保留原快照并发出通知，不自动重试。每次加载带代数标记，
// 被更新的加载取代的过期结果直接丢弃，避免旧响应覆盖新状态。
func (s *PropertySyncer) Load() error {
	s.mu.Lock()
	s.loadGen++
	gen := s.loadGen
	s.mu.Unlock()

	records, err := s.store.ListByOwner(s.session.UserID)
	if err != nil {
		s.log.Errorf("加载房源列表失败: %v", err)
		s.notify(notify.LevelError, "加载房源失败")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.loadGen {
		// 已有更新的加载，丢弃过期结果
		return nil
	}
	s.records = records
	return nil
}

// Create 用默认字段创建新房源
//
// 成功后把存储返回的记录（含生成的ID）设为当前选中草稿供立即编辑，再刷新列表。
func (s *PropertySyncer) Create(defaults models.Property) (*models.Property, error) {
	if !s.session.Valid() {
		return nil, fmt.Errorf("无已认证用户")
	}

	defaults.UserID = s.session.UserID
	stored, err := s.store.Insert(&defaults)
	if err != nil {
		s.log.Errorf("创建房源失败: %v", err)
		s.notify(notify.LevelError, "创建房源失败")
		return nil, err
	}

	s.mu.Lock()
	s.selected = stored
	s.mu.Unlock()

	s.notify(notify.LevelSuccess, "房源创建成功")
	// 刷新失败会单独通知，不影响创建结果
	_ = s.Load()
	return stored, nil
}

// Save 提交房源草稿的更新
//
// 草稿先经过可写字段投影（联查的维修请求永远不会提交），附加归属用户
// 和新的更新时间。成功后刷新列表并清除选中草稿；失败时草稿保持选中以便重试。
func (s *PropertySyncer) Save(draft models.Property) error {
	if !s.session.Valid() {
		return fmt.Errorf("无已认证用户")
	}

	fields := store.NewPropertyWritable(draft)
	if err := s.store.Update(draft.ID, s.session.UserID, fields); err != nil {
		s.log.Errorf("更新房源失败: %v", err)
		s.notify(notify.LevelError, "更新房源失败")
		return err
	}

	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()

	s.notify(notify.LevelSuccess, "房源更新成功")
	_ = s.Load()
	return nil
}

// Records 当前本地快照
func (s *PropertySyncer) Records() []models.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.Property, len(s.records))
	copy(result, s.records)
	return result
}

// Selected 当前选中的草稿
func (s *PropertySyncer) Selected() *models.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Select 选中一条记录进入编辑
func (s *PropertySyncer) Select(property *models.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = property
}

// ClearSelection 清除选中草稿
func (s *PropertySyncer) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

func (s *PropertySyncer) notify(level, message string) {
	s.notifier.Publish(notify.Event{
		UserID:  s.session.UserID,
		Level:   level,
		Message: message,
	})
}
