package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/thanhngo/glowcare-backend/internal/app/service"
	"github.com/thanhngo/glowcare-backend/pkg/logger"
)

// VoucherScheduler deactivates expired vouchers on a daily schedule.
type VoucherScheduler struct {
	cron           *cron.Cron
	voucherService service.VoucherService
}

func NewVoucherScheduler(voucherService service.VoucherService) *VoucherScheduler {
	return &VoucherScheduler{
		cron:           cron.New(),
		voucherService: voucherService,
	}
}

// Start registers the daily refresh at midnight. The read paths derive
// voucher status on their own; this job only keeps the stored column tidy.
func (s *VoucherScheduler) Start() error {
	_, err := s.cron.AddFunc("0 0 * * *", func() {
		logger.Info("Starting scheduled voucher status refresh", nil)

		count, err := s.voucherService.RefreshStatuses(time.Now())
		if err != nil {
			logger.Error("Failed to refresh voucher statuses from scheduler", err)
			return
		}

		logger.Info("Voucher status refresh finished", map[string]interface{}{
			"deactivated": count,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for voucher refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Voucher scheduler started (daily at midnight)", nil)
	return nil
}

func (s *VoucherScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Voucher scheduler stopped", nil)
}
