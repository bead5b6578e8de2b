package reviewsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/xiaofeiTM233/FlowHub/internal/api/review/dto"
	"github.com/xiaofeiTM233/FlowHub/internal/api/review/models"
	"github.com/xiaofeiTM233/FlowHub/internal/common"
	"github.com/xiaofeiTM233/FlowHub/internal/logger"
	"github.com/xiaofeiTM233/FlowHub/internal/render"
	"github.com/xiaofeiTM233/FlowHub/internal/utility"
)

// Các kiểu đầu ra của tiếp nhận bài
const (
	IntakeTypeRender     = "render"     // Chỉ render, trả về ảnh base64
	IntakeTypeRenderHTML = "renderhtml" // Chỉ render, trả về HTML preview
	IntakeTypePost       = "post"       // Render rồi đưa bài vào hàng duyệt
)

// IntakeResult là kết quả tiếp nhận bài
type IntakeResult struct {
	CID        string                 `json:"cid"`                  // ID bài
	Message    string                 `json:"message"`              // Mô tả kết quả
	Base64     string                 `json:"base64,omitempty"`     // Ảnh render (không trả khi đã đẩy duyệt)
	HTML       string                 `json:"html,omitempty"`       // HTML preview khi type=renderhtml
	PushResult map[string]interface{} `json:"result,omitempty"`     // Phản hồi của kênh đẩy duyệt
	Warning    string                 `json:"warning,omitempty"`    // Lỗi best-effort của kênh đẩy
}

// draftFromIntake dựng bài chờ duyệt mới từ payload tiếp nhận
func draftFromIntake(input dto.RenderRequest) models.Draft {
	draft := models.Draft{
		Type:      models.DraftTypeDraft,
		Timestamp: input.Timestamp,
		Review: models.ReviewState{
			Approve:  []models.Vote{},
			Reject:   []models.Vote{},
			Comments: []models.Comment{},
		},
	}
	if input.Sender != nil {
		draft.Sender = models.DraftSender{
			UserID:    input.Sender.UserID,
			Nickname:  input.Sender.Nickname,
			Anonymous: input.Sender.Anonymous,
			Platforms: input.Sender.Platforms,
		}
	}
	if input.Content != nil {
		draft.Content = contentFromInput(*input.Content)
	}
	// Danh tính hiển thị mặc định lấy từ người gửi
	if draft.Content.Nickname == "" {
		draft.Content.Nickname = draft.Sender.Nickname
		draft.Content.UserID = draft.Sender.UserID
	}
	if draft.Sender.Anonymous {
		draft.Content.Nickname = models.AnonymousNickname
		draft.Content.UserID = models.AnonymousUserID
	}
	return draft
}

// contentFromInput chuyển payload nội dung thành DraftContent
func contentFromInput(input dto.DraftContentInput) models.DraftContent {
	return models.DraftContent{
		UserID:   input.UserID,
		Nickname: input.Nickname,
		Title:    input.Title,
		Text:     input.Text,
		Images:   input.Images,
	}
}

// Intake tiếp nhận bài từ client gửi bài: tạo hoặc cập nhật bài, render
// ảnh/HTML, và với type=post thì đưa bài vào hàng duyệt rồi đẩy thông báo.
func (s *DraftService) Intake(ctx context.Context, input dto.RenderRequest) (*IntakeResult, error) {
	option, err := s.options.GetOrInit(ctx)
	if err != nil {
		return nil, err
	}

	var draft models.Draft
	if input.CID != "" {
		draft, err = s.lookup(ctx, input.CID, 0)
		if err != nil {
			return nil, common.NewError(common.ErrCodeReview, "未找到该记录", common.StatusNotFound, nil)
		}
		if input.Content != nil {
			draft.Content = contentFromInput(*input.Content)
			if _, err := s.UpdateById(ctx, draft.ID, bson.M{"content": draft.Content}); err != nil {
				return nil, err
			}
		}
	} else {
		draft, err = s.InsertOne(ctx, draftFromIntake(input))
		if err != nil {
			return nil, err
		}
	}

	if draft.Timestamp <= 0 {
		draft.Timestamp = utility.CurrentTimeInMilli()
		if _, err := s.UpdateById(ctx, draft.ID, bson.M{"timestamp": draft.Timestamp}); err != nil {
			return nil, err
		}
	}

	if !s.renderer.Configured() {
		return nil, common.NewError(common.ErrCodeInternalServer, "未设置渲染函数", common.StatusInternalServerError, nil)
	}

	outputType := render.OutputBase64
	if input.Type == IntakeTypeRenderHTML {
		outputType = render.OutputHTML
	}
	logger.WithSubmission(draft.ID.Hex()).WithFields(map[string]interface{}{
		"type":   input.Type,
		"output": outputType,
	}).Info("Tiếp nhận yêu cầu render")

	rendered, err := s.renderer.Render(ctx, draft.Content, draft.Timestamp, outputType)
	if err != nil {
		return nil, common.NewError(common.ErrCodePublishUpstream, fmt.Sprintf("渲染失败: %v", err), common.StatusBadGateway, nil)
	}

	result := &IntakeResult{CID: draft.ID.Hex()}
	if outputType == render.OutputHTML {
		result.HTML = rendered
		result.Message = "渲染完成"
		return result, nil
	}
	if input.Type != IntakeTypePost {
		result.Base64 = rendered
		result.Message = "渲染完成"
		return result, nil
	}

	// type=post: vào hàng duyệt, điền nền tảng mặc định và lưu ảnh duyệt
	draft.Images = []string{rendered}
	draft.Type = models.DraftTypePending
	if len(draft.Sender.Platforms) == 0 {
		draft.Sender.Platforms = option.DefaultPlatforms
	}
	if _, err := s.UpdateById(ctx, draft.ID, bson.M{
		"images": draft.Images,
		"type":   draft.Type,
		"sender": draft.Sender,
	}); err != nil {
		return nil, err
	}

	result.Message = "渲染完成并已推送待审"
	if !option.ReviewPushDirect {
		return result, nil
	}

	account, err := s.accounts.Resolve(ctx, option.ReviewPushPlatform)
	if err != nil {
		result.Warning = fmt.Sprintf("未找到推送账号 %s: %v", option.ReviewPushPlatform, err)
		return result, nil
	}
	push, err := s.notifier.PushReview(ctx, account, &draft, rendered, &option)
	if err != nil {
		logger.WithSubmission(draft.ID.Hex()).WithError(err).Warn("Đẩy tin duyệt thất bại")
		result.Warning = fmt.Sprintf("推送审核消息失败: %v", err)
		return result, nil
	}
	result.PushResult = push
	return result, nil
}

// RenderPreview render HTML preview của một bài sẵn có (GET /render?cid=)
func (s *DraftService) RenderPreview(ctx context.Context, cid string) (string, error) {
	draft, err := s.lookup(ctx, cid, 0)
	if err != nil {
		return "", common.NewError(common.ErrCodeReview, fmt.Sprintf("未找到ID为 %s 的帖子", cid), common.StatusNotFound, nil)
	}
	if !s.renderer.Configured() {
		return "", common.NewError(common.ErrCodeInternalServer, "未设置渲染函数", common.StatusInternalServerError, nil)
	}
	return s.renderer.Render(ctx, draft.Content, draft.Timestamp, render.OutputHTML)
}
