// Package postsvc - Test orchestrator fan-out với resolver và adapter giả,
// không cần MongoDB (Fanout/DeleteFanout không ghi database).
package postsvc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postmodels "github.com/xiaofeiTM233/FlowHub/internal/api/post/models"
	"github.com/xiaofeiTM233/FlowHub/internal/platform"
)

// fakeResolver tra cứu tài khoản trong map, aid không có thì trả lỗi
type fakeResolver struct {
	accounts map[string]*platform.Account
}

func (r *fakeResolver) Resolve(ctx context.Context, aid string) (*platform.Account, error) {
	acc, ok := r.accounts[aid]
	if !ok {
		return nil, errors.New("account not found")
	}
	return acc, nil
}

// fakeAdapter ghi lại các lần gọi và trả kết quả theo cấu hình
type fakeAdapter struct {
	kind        string
	uploadErr   error
	publishErr  error
	deleteErr   error
	panicOnCall bool
	published   []string
	deleted     []string
}

func (a *fakeAdapter) Kind() string { return a.kind }

func (a *fakeAdapter) Upload(ctx context.Context, acc *platform.Account, imageBase64 string) (map[string]interface{}, error) {
	if a.uploadErr != nil {
		return nil, a.uploadErr
	}
	return map[string]interface{}{"asset": imageBase64}, nil
}

func (a *fakeAdapter) Publish(ctx context.Context, acc *platform.Account, text string, assets []map[string]interface{}) (map[string]interface{}, error) {
	if a.panicOnCall {
		panic("adapter hỏng")
	}
	if a.publishErr != nil {
		return nil, a.publishErr
	}
	a.published = append(a.published, text)
	return map[string]interface{}{"native_id": fmt.Sprintf("%s-1", a.kind), "assets": len(assets)}, nil
}

func (a *fakeAdapter) Delete(ctx context.Context, acc *platform.Account, nativeID string) (map[string]interface{}, error) {
	if a.deleteErr != nil {
		return nil, a.deleteErr
	}
	a.deleted = append(a.deleted, nativeID)
	return map[string]interface{}{"deleted": nativeID}, nil
}

func (a *fakeAdapter) Stat(ctx context.Context, acc *platform.Account) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func (a *fakeAdapter) DeletableID(outcome platform.Outcome) string {
	if outcome.Data == nil {
		return ""
	}
	id, _ := outcome.Data["native_id"].(string)
	return id
}

// newTestService dựng PostService không chạm database, đủ cho Fanout/DeleteFanout
func newTestService(accounts map[string]*platform.Account, adapters map[string]platform.Adapter) *PostService {
	return &PostService{
		resolver: &fakeResolver{accounts: accounts},
		adapterFor: func(kind string) (platform.Adapter, bool) {
			a, ok := adapters[kind]
			return a, ok
		},
	}
}

func testAccounts() map[string]*platform.Account {
	return map[string]*platform.Account{
		"bili-main":  {AID: "bili-main", Platform: "fake-bili"},
		"qzone-main": {AID: "qzone-main", Platform: "fake-qzone"},
	}
}

func TestFanout_AllSuccess(t *testing.T) {
	bili := &fakeAdapter{kind: "fake-bili"}
	qzone := &fakeAdapter{kind: "fake-qzone"}
	s := newTestService(testAccounts(), map[string]platform.Adapter{
		"fake-bili":  bili,
		"fake-qzone": qzone,
	})

	post := postmodels.Post{
		Sender:  postmodels.PostSender{Platforms: []string{"bili-main", "qzone-main"}},
		Content: postmodels.PostContent{Text: "hello", Images: []string{"img"}},
	}

	results := s.Fanout(context.Background(), post)

	require.Len(t, results, 2)
	assert.Equal(t, platform.StatusSuccess, results["bili-main"].Status)
	assert.Equal(t, platform.StatusSuccess, results["qzone-main"].Status)
	assert.Equal(t, "fake-bili", results["bili-main"].Platform)
	assert.Equal(t, []string{"hello"}, bili.published)
	assert.Equal(t, []string{"hello"}, qzone.published)
}

func TestFanout_PartialFailureIsolated(t *testing.T) {
	bili := &fakeAdapter{kind: "fake-bili", publishErr: errors.New("API 异常")}
	qzone := &fakeAdapter{kind: "fake-qzone"}
	s := newTestService(testAccounts(), map[string]platform.Adapter{
		"fake-bili":  bili,
		"fake-qzone": qzone,
	})

	post := postmodels.Post{
		Sender:  postmodels.PostSender{Platforms: []string{"bili-main", "qzone-main"}},
		Content: postmodels.PostContent{Text: "hello"},
	}

	results := s.Fanout(context.Background(), post)

	// Một nền tảng lỗi không chặn nền tảng còn lại
	assert.Equal(t, platform.StatusError, results["bili-main"].Status)
	assert.Contains(t, results["bili-main"].Message, "API 异常")
	assert.Equal(t, platform.StatusSuccess, results["qzone-main"].Status)
}

func TestFanout_SkipsAlreadySucceeded(t *testing.T) {
	bili := &fakeAdapter{kind: "fake-bili"}
	qzone := &fakeAdapter{kind: "fake-qzone"}
	s := newTestService(testAccounts(), map[string]platform.Adapter{
		"fake-bili":  bili,
		"fake-qzone": qzone,
	})

	existing := platform.Outcome{
		Platform: "fake-bili",
		Status:   platform.StatusSuccess,
		Data:     map[string]interface{}{"native_id": "bili-cũ"},
	}
	post := postmodels.Post{
		Sender:  postmodels.PostSender{Platforms: []string{"bili-main", "qzone-main"}},
		Content: postmodels.PostContent{Text: "retry"},
		Results: map[string]platform.Outcome{"bili-main": existing},
	}

	results := s.Fanout(context.Background(), post)

	// aid đã success không bao giờ được phát hành lại, outcome cũ giữ nguyên
	assert.Empty(t, bili.published, "adapter của aid đã success không được gọi")
	assert.Equal(t, existing, results["bili-main"])
	assert.Equal(t, platform.StatusSuccess, results["qzone-main"].Status)
}

func TestFanout_RetriesFailedOutcome(t *testing.T) {
	bili := &fakeAdapter{kind: "fake-bili"}
	s := newTestService(testAccounts(), map[string]platform.Adapter{"fake-bili": bili})

	post := postmodels.Post{
		Sender:  postmodels.PostSender{Platforms: []string{"bili-main"}},
		Content: postmodels.PostContent{Text: "retry"},
		Results: map[string]platform.Outcome{
			"bili-main": {Platform: "fake-bili", Status: platform.StatusError, Message: "lần trước lỗi"},
		},
	}

	results := s.Fanout(context.Background(), post)

	assert.Equal(t, platform.StatusSuccess, results["bili-main"].Status, "outcome error được phát hành lại")
	assert.Equal(t, []string{"retry"}, bili.published)
}

func TestFanout_UnknownAccount(t *testing.T) {
	s := newTestService(map[string]*platform.Account{}, map[string]platform.Adapter{})

	post := postmodels.Post{
		Sender: postmodels.PostSender{Platforms: []string{"ma-tài-khoản"}},
	}
	results := s.Fanout(context.Background(), post)

	require.Contains(t, results, "ma-tài-khoản")
	assert.Equal(t, platform.StatusError, results["ma-tài-khoản"].Status)
	assert.Equal(t, "账号不存在", results["ma-tài-khoản"].Message)
}

func TestFanout_UnsupportedPlatform(t *testing.T) {
	accounts := map[string]*platform.Account{
		"weird": {AID: "weird", Platform: "myspace"},
	}
	s := newTestService(accounts, map[string]platform.Adapter{})

	post := postmodels.Post{Sender: postmodels.PostSender{Platforms: []string{"weird"}}}
	results := s.Fanout(context.Background(), post)

	assert.Equal(t, platform.StatusError, results["weird"].Status)
	assert.Equal(t, "不支持的平台", results["weird"].Message)
	assert.Equal(t, "myspace", results["weird"].Platform)
}

func TestFanout_AdapterPanicBecomesErrorOutcome(t *testing.T) {
	bili := &fakeAdapter{kind: "fake-bili", panicOnCall: true}
	qzone := &fakeAdapter{kind: "fake-qzone"}
	s := newTestService(testAccounts(), map[string]platform.Adapter{
		"fake-bili":  bili,
		"fake-qzone": qzone,
	})

	post := postmodels.Post{
		Sender:  postmodels.PostSender{Platforms: []string{"bili-main", "qzone-main"}},
		Content: postmodels.PostContent{Text: "boom"},
	}

	results := s.Fanout(context.Background(), post)

	assert.Equal(t, platform.StatusError, results["bili-main"].Status)
	assert.Contains(t, results["bili-main"].Message, "adapter panic")
	assert.Equal(t, platform.StatusSuccess, results["qzone-main"].Status, "panic một adapter không kéo sập fan-out")
}
