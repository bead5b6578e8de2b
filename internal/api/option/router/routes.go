// Package router đăng ký các route thuộc domain Option (cấu hình vận hành).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/xiaofeiTM233/FlowHub/internal/api/middleware"
	optionhdl "github.com/xiaofeiTM233/FlowHub/internal/api/option/handler"
	apirouter "github.com/xiaofeiTM233/FlowHub/internal/api/router"
)

// Register đăng ký route cấu hình lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	optionHandler, err := optionhdl.NewOptionHandler()
	if err != nil {
		return fmt.Errorf("create option handler: %w", err)
	}

	modMiddleware := middleware.ModeratorContextMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/options", "GET", "/", []fiber.Handler{modMiddleware}, optionHandler.HandleGet)
	apirouter.RegisterRouteWithMiddleware(v1, "/options", "POST", "/", []fiber.Handler{modMiddleware}, optionHandler.HandleUpdate)
	return nil
}
