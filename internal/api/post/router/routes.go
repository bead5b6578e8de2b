// Package router đăng ký các route thuộc domain Post (bài đã duyệt, phát hành đa nền tảng).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/xiaofeiTM233/FlowHub/internal/api/middleware"
	posthdl "github.com/xiaofeiTM233/FlowHub/internal/api/post/handler"
	apirouter "github.com/xiaofeiTM233/FlowHub/internal/api/router"
)

// Register đăng ký route bài đã duyệt lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	postHandler, err := posthdl.NewPostHandler()
	if err != nil {
		return fmt.Errorf("create post handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/posts", postHandler, apirouter.ReadOnlyConfig)

	modMiddleware := middleware.ModeratorContextMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/publish", "POST", "/", []fiber.Handler{modMiddleware}, postHandler.HandlePublish)
	apirouter.RegisterRouteWithMiddleware(v1, "/posts", "POST", "/delete", []fiber.Handler{modMiddleware}, postHandler.HandleDelete)
	return nil
}
