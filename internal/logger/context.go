package logger

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// ContextKey là type cho context keys
type ContextKey string

const (
	// RequestIDKey là key cho request ID trong context
	RequestIDKey ContextKey = "requestID"
	// ModeratorIDKey là key cho ID người duyệt trong context
	ModeratorIDKey ContextKey = "moderatorID"
	// ServiceKey là key cho service name trong context
	ServiceKey ContextKey = "service"
)

// WithContext trả về logger entry với context
func WithContext(ctx context.Context) *logrus.Entry {
	logger := GetAppLogger()
	entry := logger.WithContext(ctx)

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		entry = entry.WithField("request_id", requestID)
	}
	if moderatorID := ctx.Value(ModeratorIDKey); moderatorID != nil {
		entry = entry.WithField("moderator_id", moderatorID)
	}
	if service := ctx.Value(ServiceKey); service != nil {
		entry = entry.WithField("service", service)
	}

	return entry
}

// WithRequest trả về logger entry với request context từ Fiber
func WithRequest(c fiber.Ctx) *logrus.Entry {
	logger := GetAppLogger()
	entry := logger.WithContext(context.Background())

	// Fiber requestid middleware set vào Locals, fallback sang headers
	var requestID string
	if rid := c.Locals("requestid"); rid != nil {
		if ridStr, ok := rid.(string); ok {
			requestID = ridStr
		}
	}
	if requestID == "" {
		requestID = c.Get("X-Request-ID")
	}
	if requestID == "" {
		requestID = c.GetRespHeader("X-Request-ID")
	}
	if requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}

	entry = entry.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})

	return entry
}

// WithFields trả về logger entry với các fields bổ sung
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields(fields))
}

// WithError trả về logger entry với error
func WithError(err error) *logrus.Entry {
	return GetAppLogger().WithError(err)
}

// WithModule trả về logger entry với module name
// Module: tên module (ví dụ: "review", "publish", "platform", "render")
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}

// WithPlatform trả về logger entry với platform và account
// Platform: tên nền tảng phát hành (ví dụ: "bili", "qzone")
func WithPlatform(platform, aid string) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields{
		"platform": platform,
		"aid":      aid,
	})
}

// WithSubmission trả về logger entry với ID bài viết đang xử lý
func WithSubmission(id string) *logrus.Entry {
	return GetAppLogger().WithField("submission_id", id)
}

// WithRequestInfo trả về logger entry với đầy đủ thông tin request
// Bao gồm: method, path, IP, request_id; thêm module nếu có
func WithRequestInfo(c fiber.Ctx, module string) *logrus.Entry {
	entry := WithRequest(c)
	if module != "" {
		entry = entry.WithField("module", module)
	}
	return entry
}
