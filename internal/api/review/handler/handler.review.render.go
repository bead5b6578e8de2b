package reviewhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/xiaofeiTM233/FlowHub/internal/api/base/handler"
	"github.com/xiaofeiTM233/FlowHub/internal/api/review/dto"
	"github.com/xiaofeiTM233/FlowHub/internal/common"
	"github.com/xiaofeiTM233/FlowHub/internal/logger"
)

// HandleRenderPreview render HTML preview của một bài sẵn có (GET /render?cid=)
func (h *ReviewHandler) HandleRenderPreview(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		cid := c.Query("cid")
		if cid == "" {
			return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "缺少参数", common.StatusBadRequest, nil))
		}

		html, err := h.DraftService.RenderPreview(c.Context(), cid)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(html)
	})
}

// HandleIntake tiếp nhận bài từ client gửi bài (POST /render).
// type=post đưa bài vào hàng duyệt, các type khác chỉ render.
func (h *ReviewHandler) HandleIntake(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input dto.RenderRequest
		if err := h.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		result, err := h.DraftService.Intake(c.Context(), input)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.LogReview("intake", result.CID, c, map[string]interface{}{
			"type": input.Type,
		})
		return basehdl.HandleResponse(c, result, nil)
	})
}
