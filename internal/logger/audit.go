package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction mô tả một hành động cần ghi lại trong audit log
type AuditAction struct {
	Action       string                 `json:"action"`        // Tên hành động (ví dụ: "review_approve", "post_delete")
	ModeratorID  string                 `json:"moderator_id"`  // ID người duyệt thực hiện
	ResourceID   string                 `json:"resource_id"`   // ID tài nguyên bị ảnh hưởng
	ResourceType string                 `json:"resource_type"` // Loại tài nguyên (ví dụ: "draft", "post", "account")
	IP           string                 `json:"ip"`            // IP address
	UserAgent    string                 `json:"user_agent"`    // User agent
	Details      map[string]interface{} `json:"details"`       // Chi tiết bổ sung
	Timestamp    time.Time              `json:"timestamp"`     // Thời gian
}

// LogAction ghi một hành động vào audit log
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	auditLogger := GetAuditLogger()

	if details == nil {
		details = make(map[string]interface{})
	}

	audit := AuditAction{
		Action:    action,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
		Details:   details,
		Timestamp: time.Now(),
	}

	if moderatorID := c.Locals("moderatorID"); moderatorID != nil {
		if mid, ok := moderatorID.(string); ok {
			audit.ModeratorID = mid
		}
	}

	if requestID := c.Get("X-Request-ID"); requestID != "" {
		audit.Details["request_id"] = requestID
	}

	auditLogger.WithFields(logrus.Fields{
		"action":        audit.Action,
		"moderator_id":  audit.ModeratorID,
		"resource_id":   audit.ResourceID,
		"resource_type": audit.ResourceType,
		"ip":            audit.IP,
		"user_agent":    audit.UserAgent,
		"details":       audit.Details,
		"timestamp":     audit.Timestamp,
	}).Info("Audit log")
}

// LogReview ghi một thao tác duyệt bài vào audit log
func LogReview(action string, draftID string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["review_action"] = action
	details["resource_type"] = "draft"
	details["resource_id"] = draftID

	LogAction("review_"+action, c, details)
}

// LogPublish ghi một thao tác phát hành/xóa bài vào audit log
func LogPublish(action string, postID string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["resource_type"] = "post"
	details["resource_id"] = postID

	LogAction("publish_"+action, c, details)
}
