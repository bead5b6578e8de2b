package posthdl

import (
	"fmt"

	basehdl "github.com/xiaofeiTM233/FlowHub/internal/api/base/handler"
	postdto "github.com/xiaofeiTM233/FlowHub/internal/api/post/dto"
	postmodels "github.com/xiaofeiTM233/FlowHub/internal/api/post/models"
	postsvc "github.com/xiaofeiTM233/FlowHub/internal/api/post/service"
	"github.com/xiaofeiTM233/FlowHub/internal/common"
	"github.com/xiaofeiTM233/FlowHub/internal/logger"
	"github.com/xiaofeiTM233/FlowHub/internal/platform"
	"github.com/xiaofeiTM233/FlowHub/internal/utility"
	"github.com/gofiber/fiber/v3"
)

// PostHandler xử lý các request liên quan đến bài đã duyệt
type PostHandler struct {
	*basehdl.BaseHandler[postmodels.Post, postdto.PostCreateInput, postdto.PostUpdateInput]
	PostService *postsvc.PostService
}

// NewPostHandler tạo mới PostHandler
func NewPostHandler() (*PostHandler, error) {
	postService, err := postsvc.NewPostService()
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %v", err)
	}
	hdl := &PostHandler{PostService: postService}
	hdl.BaseHandler = basehdl.NewBaseHandler[postmodels.Post, postdto.PostCreateInput, postdto.PostUpdateInput](postService.BaseServiceMongoImpl)
	return hdl, nil
}

// HandlePublish phát hành bài lên các nền tảng.
// Body có _id thì phát hành bài sẵn có, không có thì tạo bài mới từ payload.
func (h *PostHandler) HandlePublish(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input postdto.PublishInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		var results map[string]platform.Outcome
		var err error

		if input.ID != "" {
			results, err = h.PostService.PublishByID(c.Context(), utility.String2ObjectID(input.ID))
		} else {
			if input.Sender == nil || input.Content == nil {
				return basehdl.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationInput,
					"缺少 sender 或 content",
					common.StatusBadRequest,
					nil,
				))
			}

			postType := input.Type
			if postType == "" {
				postType = postmodels.PostTypeDraft
			}
			timestamp := input.Timestamp
			if timestamp <= 0 {
				timestamp = utility.CurrentTimeInMilli()
			}
			post := postmodels.Post{
				Type:      postType,
				Timestamp: timestamp,
				Sender:    postmodels.PostSender{Platforms: input.Sender.Platforms},
				Content: postmodels.PostContent{
					Text:   input.Content.Text,
					Images: input.Content.Images,
				},
				Results: map[string]platform.Outcome{},
			}
			post, err = h.PostService.InsertOne(c.Context(), post)
			if err != nil {
				return basehdl.HandleResponse(c, nil, err)
			}
			results, err = h.PostService.Publish(c.Context(), post, true)
		}
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.LogPublish("fanout", "", c, map[string]interface{}{"platforms": len(results)})
		return basehdl.HandleResponse(c, results, nil)
	})
}

// HandleDelete gỡ bài trên tất cả nền tảng đã phát hành.
// Bài đã deleted trả về code 1, không gọi adapter (idempotent).
func (h *PostHandler) HandleDelete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input postdto.DeleteInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		deleteResults, already, err := h.PostService.DeletePost(c.Context(), utility.String2ObjectID(input.ID))
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if already {
			return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
				"code":    1,
				"message": "该帖子已被删除",
				"status":  "success",
			})
		}

		logger.LogPublish("delete", input.ID, c, map[string]interface{}{"platforms": len(deleteResults)})
		return basehdl.HandleResponse(c, deleteResults, nil)
	})
}
