// Package worker - StatsRefreshWorker làm mới số liệu tài khoản nền tảng
// (lượt xem, fan, khách ghé) theo chu kỳ để dashboard không phải gọi trực
// tiếp API nền tảng.
package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	accountsvc "github.com/xiaofeiTM233/FlowHub/internal/api/account/service"
	"github.com/xiaofeiTM233/FlowHub/internal/logger"
)

// StatsRefreshWorker worker làm mới số liệu tất cả tài khoản định kỳ
type StatsRefreshWorker struct {
	accountService *accountsvc.AccountService
	interval       time.Duration // Khoảng thời gian giữa các lần chạy (vd: 1h)
}

// NewStatsRefreshWorker tạo worker mới.
//
// Tham số:
//   - interval: Khoảng cách giữa các lần chạy (mặc định: 1h)
func NewStatsRefreshWorker(interval time.Duration) (*StatsRefreshWorker, error) {
	accountService, err := accountsvc.NewAccountService()
	if err != nil {
		return nil, err
	}
	if interval < time.Minute {
		interval = time.Hour
	}
	return &StatsRefreshWorker{
		accountService: accountService,
		interval:       interval,
	}, nil
}

// Start chạy worker trong vòng lặp.
func (w *StatsRefreshWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("📊 [STATS_REFRESH] Starting Stats Refresh Worker...")

	// Chạy ngay lần đầu sau 1 phút (tránh chạy lúc startup)
	time.Sleep(time.Minute)

	for {
		select {
		case <-ctx.Done():
			log.Info("📊 [STATS_REFRESH] Stats Refresh Worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx, log)
		}
	}
}

// runOnce chạy một đợt làm mới số liệu cho tất cả tài khoản
func (w *StatsRefreshWorker) runOnce(ctx context.Context, log *logrus.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"panic": r,
			}).Error("📊 [STATS_REFRESH] Panic khi xử lý, sẽ tiếp tục lần chạy tiếp theo")
		}
	}()

	stats, err := w.accountService.RefreshStats(ctx, nil)
	if err != nil {
		log.WithError(err).Error("📊 [STATS_REFRESH] Lỗi làm mới số liệu tài khoản")
		return
	}
	log.WithFields(map[string]interface{}{
		"accounts": len(stats),
	}).Info("📊 [STATS_REFRESH] Đã làm mới số liệu tài khoản")
}
