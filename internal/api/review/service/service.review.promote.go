package reviewsvc

import (
	"context"

	optionmodels "github.com/xiaofeiTM233/FlowHub/internal/api/option/models"
	postmodels "github.com/xiaofeiTM233/FlowHub/internal/api/post/models"
	"github.com/xiaofeiTM233/FlowHub/internal/api/review/models"
	"github.com/xiaofeiTM233/FlowHub/internal/logger"
	"github.com/xiaofeiTM233/FlowHub/internal/platform"
)

// BuildPromotedPost dựng bài Post từ bài chờ duyệt đã được thông qua.
// Ảnh render dùng cho duyệt được nối vào sau ảnh gốc của người gửi.
func BuildPromotedPost(draft *models.Draft) postmodels.Post {
	images := make([]string, 0, len(draft.Content.Images)+len(draft.Images))
	images = append(images, draft.Content.Images...)
	images = append(images, draft.Images...)

	return postmodels.Post{
		Type:      postmodels.PostTypePending,
		CID:       draft.ID,
		Timestamp: draft.Timestamp,
		Sender: postmodels.PostSender{
			Platforms: draft.Sender.Platforms,
		},
		Content: postmodels.PostContent{
			Text:   draft.Content.Text,
			Images: images,
		},
		Results: map[string]platform.Outcome{},
		Number:  draft.Num,
	}
}

// promote thăng cấp bài đã duyệt thành Post: cấp số thứ tự khi chưa có và
// tạo Post với back-link cid/pid. Không phát hành — caller lưu draft
// (type, review, num, pid) trước rồi mới phát hành, để lỗi lưu không làm
// phát hành lặp lên nền tảng ngoài.
func (s *DraftService) promote(ctx context.Context, draft *models.Draft, option *optionmodels.Option) (postmodels.Post, error) {
	cid := draft.ID.Hex()
	logger.WithSubmission(cid).Info("Đạt điều kiện duyệt, tạo bài phát hành")

	if draft.Num == 0 {
		n, err := s.options.NextNumber(ctx)
		if err != nil {
			return postmodels.Post{}, err
		}
		draft.Num = n
		option.LastNumber = n
	}

	post, err := s.promoter.InsertOne(ctx, BuildPromotedPost(draft))
	if err != nil {
		return postmodels.Post{}, err
	}
	draft.PID = post.ID
	return post, nil
}
