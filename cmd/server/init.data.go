package main

import (
	"context"

	optionsvc "github.com/xiaofeiTM233/FlowHub/internal/api/option/service"
	"github.com/xiaofeiTM233/FlowHub/internal/logger"
)

// InitDefaultData khởi tạo dữ liệu mặc định: document cấu hình vận hành singleton.
// Idempotent, gọi lại khi document đã tồn tại thì không thay đổi gì.
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	optionService, err := optionsvc.NewOptionService()
	if err != nil {
		log.Fatalf("Failed to initialize option service: %v", err)
	}

	option, err := optionService.GetOrInit(context.TODO())
	if err != nil {
		log.Fatalf("Failed to initialize default option: %v", err)
	}
	log.WithFields(map[string]interface{}{
		"approveNum":    option.ApproveNum,
		"rejectNum":     option.RejectNum,
		"totalNum":      option.TotalNum,
		"publishDirect": option.PublishDirect,
	}).Info("✅ [INIT] Option singleton ready")
}
