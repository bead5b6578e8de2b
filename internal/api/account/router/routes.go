// Package router đăng ký các route thuộc domain Account (tài khoản nền tảng).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	accounthdl "github.com/xiaofeiTM233/FlowHub/internal/api/account/handler"
	"github.com/xiaofeiTM233/FlowHub/internal/api/middleware"
	apirouter "github.com/xiaofeiTM233/FlowHub/internal/api/router"
)

// Register đăng ký route tài khoản lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	accountHandler, err := accounthdl.NewAccountHandler()
	if err != nil {
		return fmt.Errorf("create account handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/accounts", accountHandler, apirouter.ReadWriteConfig)

	modMiddleware := middleware.ModeratorContextMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/accounts", "GET", "/stats", []fiber.Handler{modMiddleware}, accountHandler.HandleStats)
	return nil
}
