package postsvc

import (
	"context"
	"fmt"
	"sync"

	postmodels "github.com/xiaofeiTM233/FlowHub/internal/api/post/models"
	"github.com/xiaofeiTM233/FlowHub/internal/logger"
	"github.com/xiaofeiTM233/FlowHub/internal/platform"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxFanout giới hạn số adapter chạy đồng thời trong một lần phát hành
const maxFanout = 8

// Fanout phát hành nội dung lên tất cả tài khoản đích, trả về results đã gộp.
// Không ghi database — caller quyết định persist.
//
// Bảo đảm:
// - aid đã success được bỏ qua, không bao giờ phát hành lại (idempotent)
// - lỗi một nền tảng không chặn các nền tảng còn lại
// - tối đa maxFanout adapter chạy đồng thời
func (s *PostService) Fanout(ctx context.Context, post postmodels.Post) map[string]platform.Outcome {
	results := make(map[string]platform.Outcome, len(post.Sender.Platforms))
	for aid, outcome := range post.Results {
		results[aid] = outcome
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxFanout)

	for _, aid := range post.Sender.Platforms {
		if outcome, ok := results[aid]; ok && outcome.Status == platform.StatusSuccess {
			// Đã phát hành thành công trên nền tảng này
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(aid string) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome := s.publishOne(ctx, aid, post.Content)

			mu.Lock()
			results[aid] = outcome
			mu.Unlock()
		}(aid)
	}
	wg.Wait()

	return results
}

// publishOne phát hành lên một tài khoản, mọi lỗi (kể cả panic của adapter)
// được chuyển thành Outcome error
func (s *PostService) publishOne(ctx context.Context, aid string, content postmodels.PostContent) (outcome platform.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithPlatform("", aid).WithField("panic", r).Error("Adapter panic khi phát hành")
			outcome = platform.Outcome{Status: platform.StatusError, Message: fmt.Sprintf("adapter panic: %v", r)}
		}
	}()

	acc, err := s.resolver.Resolve(ctx, aid)
	if err != nil {
		return platform.Outcome{Status: platform.StatusError, Message: "账号不存在"}
	}

	adapter, ok := s.adapterFor(acc.Platform)
	if !ok {
		return platform.Outcome{Platform: acc.Platform, Status: platform.StatusError, Message: "不支持的平台"}
	}

	return platform.Plus(ctx, adapter, acc, content.Text, content.Images)
}

// Publish phát hành bài và persist kết quả.
// Bài đã published trả về results hiện có, không gọi adapter (no-op an toàn).
// markPublished=false giữ nguyên type (đường promote khi publish_direct tắt
// không dùng tới, nhưng đường phát hành thủ công từng phần cần).
func (s *PostService) Publish(ctx context.Context, post postmodels.Post, markPublished bool) (map[string]platform.Outcome, error) {
	if post.Type == postmodels.PostTypePublished {
		return post.Results, nil
	}

	results := s.Fanout(ctx, post)

	update := bson.M{"results": results}
	if markPublished {
		update["type"] = postmodels.PostTypePublished
	}
	if _, err := s.UpdateById(ctx, post.ID, update); err != nil {
		return nil, err
	}

	logger.WithSubmission(post.ID.Hex()).WithField("platforms", len(post.Sender.Platforms)).Info("Đã hoàn tất fan-out phát hành")
	return results, nil
}

// PublishByID phát hành bài theo ID, serialize theo từng bài
func (s *PostService) PublishByID(ctx context.Context, id primitive.ObjectID) (map[string]platform.Outcome, error) {
	mu := lockPost(id)
	mu.Lock()
	defer mu.Unlock()

	post, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.Publish(ctx, post, true)
}
