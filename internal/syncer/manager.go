package syncer

import (
	"sync"

	"renthub/pkg/notify"

	"github.com/sirupsen/logrus"
)

// Manager 按用户维护同步器实例
//
// 同步器持有每个用户当前视图的列表快照和删除确认标记，
// 同一用户的多次请求复用同一个实例。
type Manager struct {
	propertyStore PropertyStore
	tenantStore   TenantStore
	notifier      notify.Notifier
	log           *logrus.Logger

	mu         sync.Mutex
	properties map[uint]*PropertySyncer
	tenants    map[uint]*TenantSyncer
}

// NewManager 创建同步器管理器
func NewManager(propertyStore PropertyStore, tenantStore TenantStore, notifier notify.Notifier, log *logrus.Logger) *Manager {
	return &Manager{
		propertyStore: propertyStore,
		tenantStore:   tenantStore,
		notifier:      notifier,
		log:           log,
		properties:    make(map[uint]*PropertySyncer),
		tenants:       make(map[uint]*TenantSyncer),
	}
}

// Property 获取用户的房源同步器
func (m *Manager) Property(session Session) *PropertySyncer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.properties[session.UserID]; ok {
		return s
	}
	s := NewPropertySyncer(m.propertyStore, m.notifier, session, m.log)
	m.properties[session.UserID] = s
	return s
}

// Tenant 获取用户的租客同步器
func (m *Manager) Tenant(session Session) *TenantSyncer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.tenants[session.UserID]; ok {
		return s
	}
	s := NewTenantSyncer(m.tenantStore, m.notifier, session, m.log)
	m.tenants[session.UserID] = s
	return s
}
