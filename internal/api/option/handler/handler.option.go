package optionhdl

import (
	"fmt"

	basehdl "github.com/xiaofeiTM233/FlowHub/internal/api/base/handler"
	optiondto "github.com/xiaofeiTM233/FlowHub/internal/api/option/dto"
	optionmodels "github.com/xiaofeiTM233/FlowHub/internal/api/option/models"
	optionsvc "github.com/xiaofeiTM233/FlowHub/internal/api/option/service"
	"github.com/gofiber/fiber/v3"
)

// OptionHandler xử lý các request liên quan đến cấu hình vận hành
type OptionHandler struct {
	*basehdl.BaseHandler[optionmodels.Option, optiondto.OptionInput, optiondto.OptionInput]
	OptionService *optionsvc.OptionService
}

// NewOptionHandler tạo mới OptionHandler
func NewOptionHandler() (*OptionHandler, error) {
	optionService, err := optionsvc.NewOptionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create option service: %v", err)
	}
	hdl := &OptionHandler{OptionService: optionService}
	hdl.BaseHandler = basehdl.NewBaseHandler[optionmodels.Option, optiondto.OptionInput, optiondto.OptionInput](optionService.BaseServiceMongoImpl)
	return hdl, nil
}

// HandleGet trả về document cấu hình, khởi tạo mặc định nếu chưa có
func (h *OptionHandler) HandleGet(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		option, err := h.OptionService.GetOrInit(c.Context())
		return basehdl.HandleResponse(c, option, err)
	})
}

// HandleUpdate cập nhật cấu hình từ request body.
// Chỉ các field có mặt trong body được ghi đè.
func (h *OptionHandler) HandleUpdate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input optiondto.OptionInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		option, err := h.OptionService.GetOrInit(c.Context())
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		applyOptionInput(&option, &input)

		saved, err := h.OptionService.Save(c.Context(), option)
		return basehdl.HandleResponse(c, saved, err)
	})
}

// applyOptionInput ghi các field có giá trị từ input vào option
func applyOptionInput(option *optionmodels.Option, input *optiondto.OptionInput) {
	if input.Description != nil {
		option.Description = *input.Description
	}
	if input.DefaultPlatforms != nil {
		option.DefaultPlatforms = input.DefaultPlatforms
	}
	if input.ReviewPushPlatform != nil {
		option.ReviewPushPlatform = *input.ReviewPushPlatform
	}
	if input.ReviewPushGroup != nil {
		option.ReviewPushGroup = *input.ReviewPushGroup
	}
	if input.ReviewPushDirect != nil {
		option.ReviewPushDirect = *input.ReviewPushDirect
	}
	if input.PublishDirect != nil {
		option.PublishDirect = *input.PublishDirect
	}
	if input.ApproveNum != nil {
		option.ApproveNum = *input.ApproveNum
	}
	if input.RejectNum != nil {
		option.RejectNum = *input.RejectNum
	}
	if input.TotalNum != nil {
		option.TotalNum = *input.TotalNum
	}
	if input.LastNumber != nil {
		option.LastNumber = *input.LastNumber
	}
	if input.ResetAllOnAction != nil {
		option.ResetAllOnAction = *input.ResetAllOnAction
	}
}
