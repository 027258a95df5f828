package syncer

import (
	"fmt"
	"sync"

	"renthub/internal/models"
	"renthub/internal/store"
	"renthub/pkg/notify"

	"github.com/sirupsen/logrus"
)

// TenantStore 租客同步器依赖的存储接口
type TenantStore interface {
	ListByOwner(userID uint) ([]models.Tenant, error)
	Insert(tenant *models.Tenant) (*models.Tenant, error)
	Update(id, userID uint, fields store.TenantWritable) error
	Delete(id, userID uint) error
}

// TenantSyncer 租客记录同步器
type TenantSyncer struct {
	store    TenantStore
	notifier notify.Notifier
	session  Session
	log      *logrus.Logger

	mu       sync.Mutex
	loadGen  uint64
	records  []models.Tenant
	selected *models.Tenant
	pending  map[uint]bool // 已确认待删除的租客ID
}

// NewTenantSyncer 创建租客同步器
func NewTenantSyncer(tenantStore TenantStore, notifier notify.Notifier, session Session, log *logrus.Logger) *TenantSyncer {
	return &TenantSyncer{
		store:    tenantStore,
		notifier: notifier,
		session:  session,
		log:      log,
		pending:  make(map[uint]bool),
	}
}

// Load 加载用户的全部租客并替换本地快照
func (s *TenantSyncer) Load() error {
	s.mu.Lock()
	s.loadGen++
	gen := s.loadGen
	s.mu.Unlock()

	records, err := s.store.ListByOwner(s.session.UserID)
	if err != nil {
		s.log.Errorf("加载租客列表失败: %v", err)
		s.notify(notify.LevelError, "加载租客失败")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.loadGen {
		return nil
	}
	s.records = records
	return nil
}

// Save 提交租客草稿
//
// 草稿携带ID走更新路径；没有ID走插入路径，ID和时间戳由存储生成。
// 任一路径成功后刷新列表并清除选中草稿。
func (s *TenantSyncer) Save(draft models.Tenant) error {
	if !s.session.Valid() {
		return fmt.Errorf("无已认证用户")
	}

	if draft.ID != 0 {
		fields := store.NewTenantWritable(draft)
		if err := s.store.Update(draft.ID, s.session.UserID, fields); err != nil {
			s.log.Errorf("更新租客失败: %v", err)
			s.notify(notify.LevelError, "保存租客失败")
			return err
		}
		s.notify(notify.LevelSuccess, "租客更新成功")
	} else {
		draft.UserID = s.session.UserID
		if _, err := s.store.Insert(&draft); err != nil {
			s.log.Errorf("创建租客失败: %v", err)
			s.notify(notify.LevelError, "保存租客失败")
			return err
		}
		s.notify(notify.LevelSuccess, "租客添加成功")
	}

	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()

	_ = s.Load()
	return nil
}

// MarkForDeletion 标记租客待删除（删除确认的第一阶段）
func (s *TenantSyncer) MarkForDeletion(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] = true
}

// UnmarkForDeletion 取消删除标记
func (s *TenantSyncer) UnmarkForDeletion(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}

// Delete 删除租客（删除确认的第二阶段）
//
// 必须先对同一ID调用MarkForDeletion，否则不会发出存储请求。
func (s *TenantSyncer) Delete(id uint) error {
	if !s.session.Valid() {
		return fmt.Errorf("无已认证用户")
	}

	s.mu.Lock()
	marked := s.pending[id]
	delete(s.pending, id)
	s.mu.Unlock()

	if !marked {
		return fmt.Errorf("删除前需要先确认")
	}

	if err := s.store.Delete(id, s.session.UserID); err != nil {
		s.log.Errorf("删除租客失败: %v", err)
		s.notify(notify.LevelError, "删除租客失败")
		return err
	}

	s.notify(notify.LevelSuccess, "租客删除成功")
	_ = s.Load()
	return nil
}

// Records 当前本地快照
func (s *TenantSyncer) Records() []models.Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.Tenant, len(s.records))
	copy(result, s.records)
	return result
}

// Selected 当前选中的草稿
func (s *TenantSyncer) Selected() *models.Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Select 选中一条记录进入编辑
func (s *TenantSyncer) Select(tenant *models.Tenant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = tenant
}

// ClearSelection 清除选中草稿
func (s *TenantSyncer) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

func (s *TenantSyncer) notify(level, message string) {
	s.notifier.Publish(notify.Event{
		UserID:  s.session.UserID,
		Level:   level,
		Message: message,
	})
}
