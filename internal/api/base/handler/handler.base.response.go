package basehdl

import (
	"errors"

	"github.com/xiaofeiTM233/FlowHub/internal/common"
	"github.com/xiaofeiTM233/FlowHub/internal/logger"
	"github.com/gofiber/fiber/v3"
)

// JSONResponse ghi response dạng JSON với charset UTF-8
func JSONResponse(c fiber.Ctx, statusCode int, data fiber.Map) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleResponse xử lý response trả về cho client theo format thống nhất.
// Lỗi nghiệp vụ (common.Error) giữ nguyên mã lỗi và status code, lỗi khác trả về 500.
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			return JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
		}

		return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeDatabase.Code,
			"message": err.Error(),
			"status":  "error",
		})
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// SafeHandler bọc handler với recover để tránh panic làm chết server.
// Panic được log lại và trả về lỗi 500 cho client.
func SafeHandler(c fiber.Ctx, fn func() error) error {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.GetErrorLogger().WithField("panic", r).Error("Handler panic")
				err = HandleResponse(c, nil, common.NewError(
					common.ErrCodeInternalServer,
					common.MsgInternalError,
					common.StatusInternalServerError,
					nil,
				))
			}
		}()
		err = fn()
	}()
	return err
}

// SafeHandlerWrapper wrap một Fiber handler với SafeHandler
func SafeHandlerWrapper(handler func(c fiber.Ctx) error) fiber.Handler {
	return func(c fiber.Ctx) error {
		return SafeHandler(c, func() error {
			return handler(c)
		})
	}
}
