package basehdl

import (
	"github.com/xiaofeiTM233/FlowHub/internal/common"
	"github.com/xiaofeiTM233/FlowHub/internal/global"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// SystemHandler xử lý các route hệ thống (health check)
type SystemHandler struct {
	BaseHandler[interface{}, interface{}, interface{}]
}

// NewSystemHandler tạo mới SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HandleHealth kiểm tra tình trạng hoạt động của hệ thống.
// Ping MongoDB để xác nhận kết nối còn sống.
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		if global.MongoDB_Session == nil {
			return HandleResponse(c, nil, common.NewError(
				common.ErrCodeDatabaseConnection,
				common.MsgMongoConnection,
				common.StatusServiceUnavailable,
				nil,
			))
		}

		if err := global.MongoDB_Session.Ping(c.Context(), readpref.Primary()); err != nil {
			return HandleResponse(c, nil, common.NewError(
				common.ErrCodeDatabaseConnection,
				common.MsgMongoConnection,
				common.StatusServiceUnavailable,
				err,
			))
		}

		return HandleResponse(c, fiber.Map{"healthy": true}, nil)
	})
}
