package services

import (
	"sync"
	"testing"
	"time"

	"renthub/internal/models"
	"renthub/pkg/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recordingNotifier) Publish(e notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func TestLeaseSchedulerScan(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Tenant{}))

	today := time.Now().Truncate(24 * time.Hour)
	tenants := []models.Tenant{
		{UserID: 1, Name: "Expiring Soon", Email: "a@email.com", Phone: "555-0101",
			LeaseStart: today.AddDate(-1, 0, 0), LeaseEnd: today.AddDate(0, 0, 10), PropertyID: 1},
		{UserID: 1, Name: "Already Expired", Email: "b@email.com", Phone: "555-0102",
			LeaseStart: today.AddDate(-1, 0, 0), LeaseEnd: today.AddDate(0, 0, -5), PropertyID: 1},
		{UserID: 2, Name: "Far Future", Email: "c@email.com", Phone: "555-0103",
			LeaseStart: today, LeaseEnd: today.AddDate(1, 0, 0), PropertyID: 2},
	}
	for i := range tenants {
		require.NoError(t, db.Create(&tenants[i]).Error)
	}

	notifier := &recordingNotifier{}
	scheduler := NewLeaseScheduler(db, notifier)

	scheduler.Scan()

	// 即将到期和已到期各一条提醒，远期租约不触发
	require.Len(t, notifier.events, 2)
	for _, e := range notifier.events {
		assert.Equal(t, notify.LevelWarning, e.Level)
		assert.Equal(t, uint(1), e.UserID)
	}
	assert.Contains(t, notifier.events[0].Message, "Expiring Soon")
	assert.Contains(t, notifier.events[1].Message, "Already Expired")
}
