package reviewhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/xiaofeiTM233/FlowHub/internal/api/base/handler"
	"github.com/xiaofeiTM233/FlowHub/internal/api/review/dto"
	"github.com/xiaofeiTM233/FlowHub/internal/api/review/models"
	reviewsvc "github.com/xiaofeiTM233/FlowHub/internal/api/review/service"
	"github.com/xiaofeiTM233/FlowHub/internal/common"
	"github.com/xiaofeiTM233/FlowHub/internal/logger"
)

// ReviewHandler xử lý các request duyệt bài
type ReviewHandler struct {
	*basehdl.BaseHandler[models.Draft, dto.DraftCreateInput, dto.DraftUpdateInput]
	DraftService *reviewsvc.DraftService
}

// NewReviewHandler tạo mới ReviewHandler
func NewReviewHandler() (*ReviewHandler, error) {
	draftService, err := reviewsvc.NewDraftService()
	if err != nil {
		return nil, fmt.Errorf("failed to create draft service: %v", err)
	}
	hdl := &ReviewHandler{DraftService: draftService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.Draft, dto.DraftCreateInput, dto.DraftUpdateInput](draftService.BaseServiceMongo)
	return hdl, nil
}

// HandleAction thực thi một thao tác duyệt (POST /review).
// MID không gửi trong body thì lấy từ moderator context.
func (h *ReviewHandler) HandleAction(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input dto.ActionRequest
		if err := h.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if input.MID == "" {
			if mid, ok := c.Locals("moderatorID").(string); ok {
				input.MID = mid
			}
		}

		result, err := h.DraftService.SubmitAction(c.Context(), input)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.LogReview(input.Action, input.CID, c, map[string]interface{}{
			"mid":    input.MID,
			"reason": input.Reason,
		})
		return basehdl.HandleResponse(c, result, nil)
	})
}

// HandleStat trả về số phiếu hiện tại của một bài (GET /review?cid=)
func (h *ReviewHandler) HandleStat(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		cid := c.Query("cid")
		if cid == "" {
			return basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "缺少参数", common.StatusBadRequest, nil))
		}

		stat, err := h.DraftService.GetReviewStat(c.Context(), cid)
		return basehdl.HandleResponse(c, stat, err)
	})
}
