package reviewsvc

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	optionmodels "github.com/xiaofeiTM233/FlowHub/internal/api/option/models"
	postmodels "github.com/xiaofeiTM233/FlowHub/internal/api/post/models"
	"github.com/xiaofeiTM233/FlowHub/internal/api/review/dto"
	"github.com/xiaofeiTM233/FlowHub/internal/api/review/models"
	"github.com/xiaofeiTM233/FlowHub/internal/common"
	"github.com/xiaofeiTM233/FlowHub/internal/logger"
	"github.com/xiaofeiTM233/FlowHub/internal/platform"
	"github.com/xiaofeiTM233/FlowHub/internal/utility"
)

// Các thao tác duyệt bài
const (
	ActionRetrial      = "retrial"      // Đưa bài về trạng thái chờ duyệt, xóa phiếu của người thao tác
	ActionApprove      = "approve"      // Bỏ phiếu thuận
	ActionReject       = "reject"       // Bỏ phiếu chống
	ActionApproveForce = "approveforce" // Duyệt ngay, bỏ qua ngưỡng phiếu
	ActionRejectForce  = "rejectforce"  // Từ chối ngay, bỏ qua ngưỡng phiếu
	ActionBlock        = "block"        // Từ chối và chặn người gửi
	ActionComment      = "comment"      // Ghi chú, không đổi trạng thái
	ActionRaw          = "raw"          // Đọc nội dung gốc
	ActionSender       = "sender"       // Đọc danh tính người gửi
	ActionNum          = "num"          // Đặt số thứ tự bài
	ActionToggleNick   = "togglenick"   // Bật/tắt ẩn danh
	ActionTag          = "tag"          // Gắn tag AI
	ActionRepush       = "repush"       // Đẩy lại bài vào nhóm duyệt
)

// DefaultReason dùng khi thao tác không kèm lý do
const DefaultReason = "无理由"

// ActionResult là kết quả của một thao tác duyệt bài
type ActionResult struct {
	Message string                      `json:"message"`           // Mô tả kết quả thao tác
	Review  *models.ReviewState         `json:"review,omitempty"`  // Trạng thái duyệt sau thao tác
	Results map[string]platform.Outcome `json:"results,omitempty"` // Kết quả phát hành nếu bài được duyệt và phát hành ngay
	Data    interface{}                 `json:"data,omitempty"`    // Dữ liệu riêng của action (raw, sender, tag...)
	Warning string                      `json:"warning,omitempty"` // Lỗi best-effort của kênh phụ, không làm fail thao tác
}

// applyVoteHygiene dọn phiếu trước khi ghi nhận thao tác mới.
// Retrial chỉ xóa phiếu của người thao tác. Các thao tác khác theo chính sách
// resetAll: true xóa toàn bộ phiếu, false chỉ xóa phiếu của người thao tác.
func applyVoteHygiene(review *models.ReviewState, action string, mid string, resetAll bool) {
	if action != ActionRetrial && resetAll {
		review.Approve = []models.Vote{}
		review.Reject = []models.Vote{}
		return
	}
	review.Approve = removeVotesBy(review.Approve, mid)
	review.Reject = removeVotesBy(review.Reject, mid)
}

// removeVotesBy xóa mọi phiếu của một moderator khỏi danh sách
func removeVotesBy(votes []models.Vote, mid string) []models.Vote {
	kept := make([]models.Vote, 0, len(votes))
	for _, v := range votes {
		if v.MID != mid {
			kept = append(kept, v)
		}
	}
	return kept
}

// recountStat tính lại số phiếu từ độ dài danh sách phiếu
func recountStat(review *models.ReviewState) {
	review.Stat.Approve = len(review.Approve)
	review.Stat.Reject = len(review.Reject)
}

// evaluateThresholds xét ngưỡng phiếu và chuyển trạng thái bài.
// Luật duyệt xét trước luật từ chối, duyệt thắng khi cả hai cùng đạt.
// Ngưỡng 0 nghĩa là tắt luật đó.
func evaluateThresholds(draft *models.Draft, option *optionmodels.Option) {
	approve := draft.Review.Stat.Approve
	reject := draft.Review.Stat.Reject

	if (option.ApproveNum > 0 && approve >= option.ApproveNum) ||
		(option.TotalNum > 0 && approve-reject >= option.TotalNum) {
		draft.Type = models.DraftTypeApproved
		return
	}
	if (option.RejectNum > 0 && reject >= option.RejectNum) ||
		(option.TotalNum > 0 && reject-approve >= option.TotalNum) {
		draft.Type = models.DraftTypeRejected
	}
}

// appendComment thêm ghi chú với timestamp hiện tại
func appendComment(review *models.ReviewState, mid, reason string) {
	review.Comments = append(review.Comments, models.Comment{
		MID:       mid,
		Reason:    reason,
		Timestamp: utility.CurrentTimeInMilli(),
	})
}

// SubmitAction thực thi một thao tác duyệt trên bài chờ duyệt.
// Bài được tra theo CID hoặc Timestamp. Các thao tác trên cùng một bài được
// serialize bằng mutex theo bài. Side effect kênh phụ (push, ban) chỉ tạo
// warning, không làm fail thao tác.
func (s *DraftService) SubmitAction(ctx context.Context, input dto.ActionRequest) (*ActionResult, error) {
	action := strings.ToLower(strings.TrimSpace(input.Action))
	mid := input.MID
	reason := input.Reason
	if reason == "" {
		reason = DefaultReason
	}

	option, err := s.options.GetOrInit(ctx)
	if err != nil {
		return nil, err
	}

	found, err := s.lookup(ctx, input.CID, input.Timestamp)
	if err != nil {
		ref := input.CID
		if ref == "" {
			ref = fmt.Sprintf("%d", input.Timestamp)
		}
		return nil, common.NewError(common.ErrCodeReview, fmt.Sprintf("未找到ID为 %s 的帖子", ref), common.StatusNotFound, nil)
	}

	mu := lockDraft(found.ID)
	mu.Lock()
	defer mu.Unlock()

	// Đọc lại trong mutex để không thao tác trên snapshot cũ
	draft, err := s.FindOneById(ctx, found.ID)
	if err != nil {
		return nil, err
	}
	cid := draft.ID.Hex()

	if draft.Type != models.DraftTypePending && action != ActionRetrial {
		return nil, common.NewError(common.ErrCodeReviewState, fmt.Sprintf("ID为 %s 的帖子不在审核状态", cid), common.StatusBadRequest, nil)
	}

	logger.WithSubmission(cid).WithFields(map[string]interface{}{
		"mid":    mid,
		"action": action,
		"reason": reason,
	}).Info("Thao tác duyệt bài")

	// Các thao tác đọc và tiện ích không đụng tới phiếu
	switch action {
	case ActionRaw:
		return &ActionResult{Message: "获取原始内容", Data: draft.Content}, nil
	case ActionSender:
		return &ActionResult{Message: "获取原始内容", Data: draft.Sender}, nil
	case ActionNum:
		return s.actionNum(ctx, &draft, &option, input.Num)
	case ActionToggleNick:
		return s.actionToggleNick(ctx, &draft)
	case ActionTag:
		return s.actionTag(ctx, &draft)
	case ActionRepush:
		return s.actionRepush(ctx, &draft, &option)
	}

	applyVoteHygiene(&draft.Review, action, mid, option.ResetAllOnAction)

	result := ""
	warning := ""
	switch action {
	case ActionRetrial:
		draft.Type = models.DraftTypePending
		appendComment(&draft.Review, mid, "重审："+reason)
		result = fmt.Sprintf("对帖子 %s 执行：重审", cid)
	case ActionApprove:
		draft.Review.Approve = append(draft.Review.Approve, models.Vote{MID: mid, Reason: reason})
		result = fmt.Sprintf("对帖子 %s 投票：通过", cid)
	case ActionReject:
		draft.Review.Reject = append(draft.Review.Reject, models.Vote{MID: mid, Reason: reason})
		result = fmt.Sprintf("对帖子 %s 投票：拒绝", cid)
	case ActionApproveForce:
		draft.Type = models.DraftTypeApproved
		appendComment(&draft.Review, mid, "强制通过："+reason)
		result = fmt.Sprintf("对帖子 %s 执行：强制通过", cid)
	case ActionRejectForce:
		draft.Type = models.DraftTypeRejected
		appendComment(&draft.Review, mid, "强制拒绝："+reason)
		result = fmt.Sprintf("对帖子 %s 执行：强制拒绝", cid)
	case ActionBlock:
		draft.Type = models.DraftTypeRejected
		appendComment(&draft.Review, mid, "拉黑："+reason)
		if err := s.ban.Block(ctx, draft.Sender.UserID, reason); err != nil {
			warning = fmt.Sprintf("拉黑发送者失败: %v", err)
		}
		result = fmt.Sprintf("对帖子 %s 执行：拉黑", cid)
	case ActionComment:
		appendComment(&draft.Review, mid, reason)
		result = fmt.Sprintf("对帖子 %s 评论：%s", cid, reason)
	default:
		return nil, common.NewError(common.ErrCodeReviewAction, fmt.Sprintf("不支持的操作: %s", action), common.StatusBadRequest, nil)
	}

	recountStat(&draft.Review)
	if action == ActionApprove || action == ActionReject {
		evaluateThresholds(&draft, &option)
	}

	var promotedPost postmodels.Post
	promoted := false
	if draft.Type == models.DraftTypeApproved {
		promotedPost, err = s.promote(ctx, &draft, &option)
		if err != nil {
			return nil, err
		}
		promoted = true
	}
	if draft.Type == models.DraftTypeRejected {
		logger.WithSubmission(cid).Info("Bài bị từ chối")
	}

	update := bson.M{
		"type":   draft.Type,
		"review": draft.Review,
	}
	if draft.Num != 0 {
		update["num"] = draft.Num
	}
	if !draft.PID.IsZero() {
		update["pid"] = draft.PID
	}
	if _, err := s.UpdateById(ctx, draft.ID, update); err != nil {
		return nil, err
	}

	// Phát hành sau khi đã lưu trạng thái duyệt, tránh lặp phát hành khi lưu lỗi
	var publishResults map[string]platform.Outcome
	if promoted && option.PublishDirect {
		logger.WithSubmission(cid).Info("Đạt điều kiện duyệt, phát hành ngay")
		publishResults, err = s.promoter.Publish(ctx, promotedPost, true)
		if err != nil {
			return nil, err
		}
	}

	return &ActionResult{
		Message: result,
		Review:  &draft.Review,
		Results: publishResults,
		Warning: warning,
	}, nil
}

// actionNum đặt số thứ tự bài và đồng bộ bộ đếm last_number
func (s *DraftService) actionNum(ctx context.Context, draft *models.Draft, option *optionmodels.Option, num int64) (*ActionResult, error) {
	if num <= 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "编号必须是一个大于 0 的整数", common.StatusBadRequest, map[string]interface{}{
			"error_number": num,
		})
	}
	if err := s.options.SetLastNumber(ctx, num); err != nil {
		return nil, err
	}
	if _, err := s.UpdateById(ctx, draft.ID, bson.M{"num": num}); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("已设定上次编号和当前稿件编号为%d", num)
	if option.PublishDirect {
		message += "，请尽快发布该帖子避免编号顺序异常"
	}
	return &ActionResult{
		Message: message,
		Data:    map[string]interface{}{"last_number": num},
	}, nil
}

// actionToggleNick đảo trạng thái ẩn danh của bài.
// Bật ẩn danh thì danh tính hiển thị đổi sang placeholder, danh tính gốc
// vẫn giữ trong sender để khôi phục khi tắt.
func (s *DraftService) actionToggleNick(ctx context.Context, draft *models.Draft) (*ActionResult, error) {
	draft.Sender.Anonymous = !draft.Sender.Anonymous
	if draft.Sender.Anonymous {
		draft.Content.Nickname = models.AnonymousNickname
		draft.Content.UserID = models.AnonymousUserID
	} else {
		draft.Content.Nickname = draft.Sender.Nickname
		draft.Content.UserID = draft.Sender.UserID
	}

	if _, err := s.UpdateById(ctx, draft.ID, bson.M{
		"sender":  draft.Sender,
		"content": draft.Content,
	}); err != nil {
		return nil, err
	}

	mode := "非匿名"
	if draft.Sender.Anonymous {
		mode = "匿名"
	}
	return &ActionResult{
		Message: fmt.Sprintf("已切换 %s 稿件为%s，请考虑重新渲染稿件", draft.ID.Hex(), mode),
	}, nil
}

// actionTag gọi dịch vụ AI gắn tag và lưu kết quả vào bài
func (s *DraftService) actionTag(ctx context.Context, draft *models.Draft) (*ActionResult, error) {
	if !s.tagger.Configured() {
		return nil, common.NewError(common.ErrCodeReview, "未配置 AI 标签服务", common.StatusBadRequest, nil)
	}

	tags, err := s.tagger.Tags(ctx, draft.Content)
	if err != nil {
		return nil, common.NewError(common.ErrCodePublishUpstream, fmt.Sprintf("获取标签失败: %v", err), common.StatusBadGateway, nil)
	}
	if _, err := s.UpdateById(ctx, draft.ID, bson.M{"tags": tags}); err != nil {
		return nil, err
	}

	return &ActionResult{Message: "获取标签", Data: tags}, nil
}

// actionRepush đẩy lại bài vào nhóm duyệt. Best-effort: lỗi push chỉ tạo warning.
func (s *DraftService) actionRepush(ctx context.Context, draft *models.Draft, option *optionmodels.Option) (*ActionResult, error) {
	result := &ActionResult{
		Message: fmt.Sprintf("已重新推送投稿 %s", draft.ID.Hex()),
	}

	account, err := s.accounts.Resolve(ctx, option.ReviewPushPlatform)
	if err != nil {
		result.Warning = fmt.Sprintf("未找到推送账号 %s: %v", option.ReviewPushPlatform, err)
		return result, nil
	}

	image := ""
	if len(draft.Images) > 0 {
		image = draft.Images[0]
	}
	push, err := s.notifier.PushReview(ctx, account, draft, image, option)
	if err != nil {
		logger.WithSubmission(draft.ID.Hex()).WithError(err).Warn("Đẩy lại tin duyệt thất bại")
		result.Warning = fmt.Sprintf("重新推送审核消息失败: %v", err)
		return result, nil
	}
	result.Data = push
	return result, nil
}
