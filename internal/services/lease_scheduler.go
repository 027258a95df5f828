package services

import (
	"fmt"
	"time"

	"renthub/internal/models"
	"renthub/pkg/logger"
	"renthub/pkg/notify"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// 租约到期提醒的提前天数
const leaseExpiryWindowDays = 30

// LeaseScheduler 租约到期扫描调度器
//
// 每天定时扫描租约，对即将到期和已经到期的租约向房东推送通知。
type LeaseScheduler struct {
	db       *gorm.DB
	notifier notify.Notifier
	log      *logrus.Logger
	cron     *cron.Cron
}

// NewLeaseScheduler 创建租约调度器
func NewLeaseScheduler(db *gorm.DB, notifier notify.Notifier) *LeaseScheduler {
	return &LeaseScheduler{
		db:       db,
		notifier: notifier,
		log:      logger.GetLogger(),
		cron:     cron.New(),
	}
}

// Start 启动调度器，每天早上9点扫描一次
func (s *LeaseScheduler) Start() error {
	if _, err := s.cron.AddFunc("0 9 * * *", s.Scan); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("Lease expiry scheduler started")
	return nil
}

// Stop 停止调度器
func (s *LeaseScheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Scan 扫描一轮租约
func (s *LeaseScheduler) Scan() {
	today := time.Now().Truncate(24 * time.Hour)
	windowEnd := today.AddDate(0, 0, leaseExpiryWindowDays)

	// 即将到期
	var expiring []models.Tenant
	err := s.db.Where("lease_end >= ? AND lease_end <= ?", today, windowEnd).
		Find(&expiring).Error
	if err != nil {
		s.log.Errorf("扫描即将到期租约失败: %v", err)
		return
	}
	for _, tenant := range expiring {
		s.notifier.Publish(notify.Event{
			UserID:  tenant.UserID,
			Level:   notify.LevelWarning,
			Message: fmt.Sprintf("租客 %s 的租约将于 %s 到期", tenant.Name, tenant.LeaseEnd.Format("2006-01-02")),
		})
	}

	// 已经到期
	var expired []models.Tenant
	err = s.db.Where("lease_end < ?", today).Find(&expired).Error
	if err != nil {
		s.log.Errorf("扫描已到期租约失败: %v", err)
		return
	}
	for _, tenant := range expired {
		s.notifier.Publish(notify.Event{
			UserID:  tenant.UserID,
			Level:   notify.LevelWarning,
			Message: fmt.Sprintf("租客 %s 的租约已于 %s 到期", tenant.Name, tenant.LeaseEnd.Format("2006-01-02")),
		})
	}

	s.log.Infof("Lease scan finished: %d expiring, %d expired", len(expiring), len(expired))
}
