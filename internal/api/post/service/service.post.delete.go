package postsvc

import (
	"context"

	postmodels "github.com/xiaofeiTM233/FlowHub/internal/api/post/models"
	"github.com/xiaofeiTM233/FlowHub/internal/logger"
	"github.com/xiaofeiTM233/FlowHub/internal/platform"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeleteFanout gỡ bài trên từng nền tảng theo results đã phát hành.
// ID gốc để xóa được adapter trích xuất từ outcome (bili: dyn_id_str,
// qzone: t1_tid). Lỗi từng nền tảng được cô lập như khi phát hành.
func (s *PostService) DeleteFanout(ctx context.Context, results map[string]platform.Outcome) map[string]platform.Outcome {
	deleteResults := make(map[string]platform.Outcome, len(results))

	for aid, outcome := range results {
		acc, err := s.resolver.Resolve(ctx, aid)
		if err != nil {
			deleteResults[aid] = platform.Outcome{Status: platform.StatusError, Message: "账号不存在"}
			continue
		}

		adapter, ok := s.adapterFor(acc.Platform)
		if !ok {
			deleteResults[aid] = platform.Outcome{Platform: acc.Platform, Status: platform.StatusError, Message: "不支持的平台"}
			continue
		}

		tid := adapter.DeletableID(outcome)
		if tid == "" {
			deleteResults[aid] = platform.Outcome{Platform: acc.Platform, Status: platform.StatusError, Message: "未能在发布结果中找到用于删除的ID"}
			continue
		}

		data, err := adapter.Delete(ctx, acc, tid)
		if err != nil {
			deleteResults[aid] = platform.Outcome{Platform: acc.Platform, Status: platform.StatusError, Message: err.Error()}
			continue
		}
		deleteResults[aid] = platform.Outcome{Platform: acc.Platform, Status: platform.StatusSuccess, Data: data}
	}

	return deleteResults
}

// DeletePost gỡ bài trên tất cả nền tảng rồi đánh dấu deleted (trạng thái cuối).
// Trả về (kết quả xóa, đã-xóa-từ-trước, lỗi). Gọi lại trên bài đã deleted là
// no-op an toàn, không gọi adapter nào.
func (s *PostService) DeletePost(ctx context.Context, id primitive.ObjectID) (map[string]platform.Outcome, bool, error) {
	mu := lockPost(id)
	mu.Lock()
	defer mu.Unlock()

	post, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if post.Type == postmodels.PostTypeDeleted {
		return nil, true, nil
	}

	deleteResults := s.DeleteFanout(ctx, post.Results)

	// Dù từng nền tảng thành bại ra sao, bài vẫn chuyển sang deleted
	if _, err := s.UpdateById(ctx, post.ID, bson.M{"type": postmodels.PostTypeDeleted}); err != nil {
		return nil, false, err
	}

	logger.WithSubmission(post.ID.Hex()).WithField("platforms", len(deleteResults)).Info("Đã gỡ bài trên các nền tảng")
	return deleteResults, false, nil
}
