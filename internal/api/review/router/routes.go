// Package router đăng ký các route thuộc domain Review (bài chờ duyệt).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/xiaofeiTM233/FlowHub/internal/api/middleware"
	reviewhdl "github.com/xiaofeiTM233/FlowHub/internal/api/review/handler"
	apirouter "github.com/xiaofeiTM233/FlowHub/internal/api/router"
)

// Register đăng ký route duyệt bài lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	reviewHandler, err := reviewhdl.NewReviewHandler()
	if err != nil {
		return fmt.Errorf("create review handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/drafts", reviewHandler, apirouter.ReadWriteConfig)

	modMiddleware := middleware.ModeratorContextMiddleware()
	chain := []fiber.Handler{modMiddleware}
	apirouter.RegisterRouteWithMiddleware(v1, "/review", "POST", "/", chain, reviewHandler.HandleAction)
	apirouter.RegisterRouteWithMiddleware(v1, "/review", "GET", "/", chain, reviewHandler.HandleStat)
	apirouter.RegisterRouteWithMiddleware(v1, "/render", "GET", "/", chain, reviewHandler.HandleRenderPreview)
	apirouter.RegisterRouteWithMiddleware(v1, "/render", "POST", "/", chain, reviewHandler.HandleIntake)
	return nil
}
