package middleware

import (
	"github.com/gofiber/fiber/v3"
)

// ModeratorContextMiddleware middleware để quản lý moderator context.
// - Đọc X-Moderator-ID từ header (tên hiển thị của người duyệt)
// - Lưu moderatorID vào context để handler và audit log sử dụng
// - Không có header thì dùng "admin" làm mặc định
func ModeratorContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		moderatorID := c.Get("X-Moderator-ID")
		if moderatorID == "" {
			moderatorID = "admin"
		}
		c.Locals("moderatorID", moderatorID)
		return c.Next()
	}
}
