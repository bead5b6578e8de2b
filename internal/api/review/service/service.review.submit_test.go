package reviewsvc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/xiaofeiTM233/FlowHub/internal/api/base/service"
	optionmodels "github.com/xiaofeiTM233/FlowHub/internal/api/option/models"
	postmodels "github.com/xiaofeiTM233/FlowHub/internal/api/post/models"
	"github.com/xiaofeiTM233/FlowHub/internal/api/review/dto"
	"github.com/xiaofeiTM233/FlowHub/internal/api/review/models"
	"github.com/xiaofeiTM233/FlowHub/internal/common"
	"github.com/xiaofeiTM233/FlowHub/internal/platform"
)

// fakeDraftStore giữ bài trong map, chỉ cài các method mà pipeline duyệt gọi tới.
// Embed interface để không phải cài đủ 19 method.
type fakeDraftStore struct {
	basesvc.BaseServiceMongo[models.Draft]
	drafts    map[string]models.Draft
	updateErr error
	events    *[]string
}

func (f *fakeDraftStore) FindOneById(ctx context.Context, id primitive.ObjectID) (models.Draft, error) {
	draft, ok := f.drafts[id.Hex()]
	if !ok {
		return models.Draft{}, common.ErrNotFound
	}
	return draft, nil
}

func (f *fakeDraftStore) FindOne(ctx context.Context, filter interface{}, opts *mongoopts.FindOneOptions) (models.Draft, error) {
	m, ok := filter.(bson.M)
	if !ok {
		return models.Draft{}, common.ErrNotFound
	}
	if ts, ok := m["timestamp"].(int64); ok {
		for _, draft := range f.drafts {
			if draft.Timestamp == ts {
				return draft, nil
			}
		}
	}
	return models.Draft{}, common.ErrNotFound
}

func (f *fakeDraftStore) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (models.Draft, error) {
	if f.updateErr != nil {
		return models.Draft{}, f.updateErr
	}
	draft, ok := f.drafts[id.Hex()]
	if !ok {
		return models.Draft{}, common.ErrNotFound
	}
	update, ok := data.(bson.M)
	if !ok {
		return models.Draft{}, fmt.Errorf("update không phải bson.M")
	}
	if v, ok := update["type"].(string); ok {
		draft.Type = v
	}
	if v, ok := update["review"].(models.ReviewState); ok {
		draft.Review = v
	}
	if v, ok := update["num"].(int64); ok {
		draft.Num = v
	}
	if v, ok := update["pid"].(primitive.ObjectID); ok {
		draft.PID = v
	}
	if v, ok := update["sender"].(models.DraftSender); ok {
		draft.Sender = v
	}
	if v, ok := update["content"].(models.DraftContent); ok {
		draft.Content = v
	}
	if v, ok := update["tags"].(map[string][]string); ok {
		draft.Tags = v
	}
	f.drafts[id.Hex()] = draft
	if f.events != nil {
		*f.events = append(*f.events, "persist")
	}
	return draft, nil
}

// fakeOptionStore trả về cấu hình cố định và đếm số tuần tự trong bộ nhớ
type fakeOptionStore struct {
	option  optionmodels.Option
	nextErr error
	last    int64
}

func (f *fakeOptionStore) GetOrInit(ctx context.Context) (optionmodels.Option, error) {
	return f.option, nil
}

func (f *fakeOptionStore) NextNumber(ctx context.Context) (int64, error) {
	if f.nextErr != nil {
		return 0, f.nextErr
	}
	f.last++
	return f.last, nil
}

func (f *fakeOptionStore) SetLastNumber(ctx context.Context, n int64) error {
	f.last = n
	return nil
}

// fakePromoter ghi lại các bài được tạo và phát hành
type fakePromoter struct {
	inserted  []postmodels.Post
	published []postmodels.Post
	insertErr error
	events    *[]string
}

func (f *fakePromoter) InsertOne(ctx context.Context, post postmodels.Post) (postmodels.Post, error) {
	if f.insertErr != nil {
		return postmodels.Post{}, f.insertErr
	}
	post.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, post)
	if f.events != nil {
		*f.events = append(*f.events, "insert-post")
	}
	return post, nil
}

func (f *fakePromoter) Publish(ctx context.Context, post postmodels.Post, markPublished bool) (map[string]platform.Outcome, error) {
	f.published = append(f.published, post)
	if f.events != nil {
		*f.events = append(*f.events, "publish")
	}
	return map[string]platform.Outcome{
		"acc-1": {Platform: "bili", Status: platform.StatusSuccess},
	}, nil
}

type fakeBanService struct {
	blocked []int64
	reasons []string
	err     error
}

func (f *fakeBanService) Block(ctx context.Context, userID int64, reason string) error {
	f.blocked = append(f.blocked, userID)
	f.reasons = append(f.reasons, reason)
	return f.err
}

type fakeReviewNotifier struct{}

func (fakeReviewNotifier) PushReview(ctx context.Context, account *platform.Account, draft *models.Draft, image string, option *optionmodels.Option) (map[string]interface{}, error) {
	return map[string]interface{}{"message_id": int64(1)}, nil
}

type fakeContentTagger struct{}

func (fakeContentTagger) Configured() bool { return false }
func (fakeContentTagger) Tags(ctx context.Context, content models.DraftContent) (map[string][]string, error) {
	return nil, nil
}

type fakeAccountResolver struct{}

func (fakeAccountResolver) Resolve(ctx context.Context, aid string) (*platform.Account, error) {
	return nil, common.ErrNotFound
}

type fakeContentRenderer struct{}

func (fakeContentRenderer) Configured() bool { return false }
func (fakeContentRenderer) Render(ctx context.Context, content models.DraftContent, timestamp int64, newType string) (string, error) {
	return "", fmt.Errorf("chưa cấu hình render")
}

// submitFixture gom các fake lại để từng test chỉnh từng phần
type submitFixture struct {
	svc      *DraftService
	store    *fakeDraftStore
	options  *fakeOptionStore
	promoter *fakePromoter
	ban      *fakeBanService
	events   []string
}

func newSubmitFixture(option optionmodels.Option, drafts ...models.Draft) *submitFixture {
	f := &submitFixture{}
	f.store = &fakeDraftStore{drafts: map[string]models.Draft{}, events: &f.events}
	for _, d := range drafts {
		f.store.drafts[d.ID.Hex()] = d
	}
	f.options = &fakeOptionStore{option: option, last: option.LastNumber}
	f.promoter = &fakePromoter{events: &f.events}
	f.ban = &fakeBanService{}
	f.svc = NewDraftServiceWith(f.store, f.options, f.promoter, fakeReviewNotifier{}, fakeContentTagger{}, fakeAccountResolver{}, fakeContentRenderer{}, f.ban)
	return f
}

func pendingDraft() models.Draft {
	return models.Draft{
		ID:        primitive.NewObjectID(),
		Type:      models.DraftTypePending,
		Timestamp: 1700000000000,
		Sender: models.DraftSender{
			UserID:    123456,
			Nickname:  "người gửi",
			Platforms: []string{"acc-1"},
		},
		Content: models.DraftContent{
			UserID:   123456,
			Nickname: "người gửi",
			Text:     "nội dung thử",
		},
		Review: models.ReviewState{Approve: []models.Vote{}, Reject: []models.Vote{}},
	}
}

func TestSubmitAction_UnknownAction(t *testing.T) {
	draft := pendingDraft()
	f := newSubmitFixture(optionmodels.Option{ApproveNum: 1, RejectNum: 1}, draft)

	_, err := f.svc.SubmitAction(context.Background(), dto.ActionRequest{
		CID:    draft.ID.Hex(),
		Action: "promote2",
		MID:    "mod-a",
	})
	require.Error(t, err)

	var appErr *common.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "不支持的操作: promote2", appErr.Message)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)

	// Action lạ không được đụng tới bài
	assert.Equal(t, models.DraftTypePending, f.store.drafts[draft.ID.Hex()].Type)
	assert.Empty(t, f.events)
}

func TestSubmitAction_NotPending(t *testing.T) {
	draft := pendingDraft()
	draft.Type = models.DraftTypeApproved
	f := newSubmitFixture(optionmodels.Option{ApproveNum: 1}, draft)

	_, err := f.svc.SubmitAction(context.Background(), dto.ActionRequest{
		CID:    draft.ID.Hex(),
		Action: "approve",
		MID:    "mod-a",
	})
	require.Error(t, err)

	var appErr *common.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, fmt.Sprintf("ID为 %s 的帖子不在审核状态", draft.ID.Hex()), appErr.Message)
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
}

func TestSubmitAction_NotFound(t *testing.T) {
	f := newSubmitFixture(optionmodels.Option{ApproveNum: 1})

	missing := primitive.NewObjectID().Hex()
	_, err := f.svc.SubmitAction(context.Background(), dto.ActionRequest{
		CID:    missing,
		Action: "approve",
		MID:    "mod-a",
	})
	require.Error(t, err)

	var appErr *common.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, fmt.Sprintf("未找到ID为 %s 的帖子", missing), appErr.Message)
	assert.Equal(t, common.StatusNotFound, appErr.StatusCode)
}

func TestSubmitAction_LookupByTimestamp(t *testing.T) {
	draft := pendingDraft()
	f := newSubmitFixture(optionmodels.Option{ApproveNum: 2}, draft)

	result, err := f.svc.SubmitAction(context.Background(), dto.ActionRequest{
		Timestamp: draft.Timestamp,
		Action:    "approve",
		MID:       "mod-a",
	})
	require.NoError(t, err)
	assert.Contains(t, result.Message, "投票：通过")
	assert.Equal(t, 1, f.store.drafts[draft.ID.Hex()].Review.Stat.Approve)
}

func TestSubmitAction_ApproveForce(t *testing.T) {
	draft := pendingDraft()
	f := newSubmitFixture(optionmodels.Option{ApproveNum: 2, PublishDirect: true, LastNumber: 41}, draft)

	result, err := f.svc.SubmitAction(context.Background(), dto.ActionRequest{
		CID:    draft.ID.Hex(),
		Action: "approveforce",
		MID:    "mod-a",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("对帖子 %s 执行：强制通过", draft.ID.Hex()), result.Message)
	assert.Contains(t, result.Results, "acc-1")

	saved := f.store.drafts[draft.ID.Hex()]
	assert.Equal(t, models.DraftTypeApproved, saved.Type)
	assert.Equal(t, int64(42), saved.Num)
	assert.False(t, saved.PID.IsZero())
	require.Len(t, saved.Review.Comments, 1)
	assert.Equal(t, "强制通过：无理由", saved.Review.Comments[0].Reason)

	require.Len(t, f.promoter.inserted, 1)
	assert.Equal(t, saved.PID, f.promoter.inserted[0].ID)
	require.Len(t, f.promoter.published, 1)

	// Bài phải được lưu xong mới phát hành
	assert.Equal(t, []string{"insert-post", "persist", "publish"}, f.events)
}

func TestSubmitAction_RejectForce(t *testing.T) {
	draft := pendingDraft()
	f := newSubmitFixture(optionmodels.Option{ApproveNum: 1, PublishDirect: true}, draft)

	result, err := f.svc.SubmitAction(context.Background(), dto.ActionRequest{
		CID:    draft.ID.Hex(),
		Action: "rejectforce",
		MID:    "mod-a",
		Reason: "trùng bài",
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("对帖子 %s 执行：强制拒绝", draft.ID.Hex()), result.Message)

	saved := f.store.drafts[draft.ID.Hex()]
	assert.Equal(t, models.DraftTypeRejected, saved.Type)
	require.Len(t, saved.Review.Comments, 1)
	assert.Equal(t, "强制拒绝：trùng bài", saved.Review.Comments[0].Reason)

	// Bài bị từ chối thì không tạo Post, không phát hành
	assert.Empty(t, f.promoter.inserted)
	assert.Empty(t, f.promoter.published)
}

func TestSubmitAction_Block(t *testing.T) {
	draft := pendingDraft()
	f := newSubmitFixture(optionmodels.Option{ApproveNum: 1}, draft)

	result, err := f.svc.SubmitAction(context.Background(), dto.ActionRequest{
		CID:    draft.ID.Hex(),
		Action: "block",
		MID:    "mod-a",
		Reason: "spam",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Warning)

	saved := f.store.drafts[draft.ID.Hex()]
	assert.Equal(t, models.DraftTypeRejected, saved.Type)
	assert.Equal(t, []int64{123456}, f.ban.blocked)
	assert.Equal(t, []string{"spam"}, f.ban.reasons)
}

func TestSubmitAction_BlockBanFailureIsWarning(t *testing.T) {
	draft := pendingDraft()
	f := newSubmitFixture(optionmodels.Option{ApproveNum: 1}, draft)
	f.ban.err = fmt.Errorf("dịch vụ chặn lỗi")

	result, err := f.svc.SubmitAction(context.Background(), dto.ActionRequest{
		CID:    draft.ID.Hex(),
		Action: "block",
		MID:    "mod-a",
	})
	require.NoError(t, err)
	assert.Contains(t, result.Warning, "拉黑发送者失败")

	// Lỗi kênh phụ không chặn việc từ chối bài
	assert.Equal(t, models.DraftTypeRejected, f.store.drafts[draft.ID.Hex()].Type)
}

func TestSubmitAction_TwoModeratorPromotion(t *testing.T) {
	draft := pendingDraft()
	f := newSubmitFixture(optionmodels.Option{ApproveNum: 2, RejectNum: 2}, draft)

	// Phiếu thứ nhất chưa đạt ngưỡng, bài vẫn chờ duyệt
	result, err := f.svc.SubmitAction(context.Background(), dto.ActionRequest{
		CID:    draft.ID.Hex(),
		Action: "approve",
		MID:    "mod-a",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Review)
	assert.Equal(t, 1, result.Review.Stat.Approve)
	assert.Equal(t, models.DraftTypePending, f.store.drafts[draft.ID.Hex()].Type)
	assert.Empty(t, f.promoter.inserted)

	// Phiếu thứ hai của moderator khác đạt ngưỡng, bài được duyệt
	result, err = f.svc.SubmitAction(context.Background(), dto.ActionRequest{
		CID:    draft.ID.Hex(),
		Action: "approve",
		MID:    "mod-b",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Review.Stat.Approve)

	saved := f.store.drafts[draft.ID.Hex()]
	assert.Equal(t, models.DraftTypeApproved, saved.Type)
	assert.Equal(t, int64(1), saved.Num)
	assert.False(t, saved.PID.IsZero())
	require.Len(t, f.promoter.inserted, 1)

	// publish_direct tắt thì chỉ tạo Post, không phát hành
	assert.Empty(t, f.promoter.published)
}

func TestSubmitAction_RepeatVoteDoesNotPromote(t *testing.T) {
	draft := pendingDraft()
	f := newSubmitFixture(optionmodels.Option{ApproveNum: 2}, draft)

	for i := 0; i < 3; i++ {
		result, err := f.svc.SubmitAction(context.Background(), dto.ActionRequest{
			CID:    draft.ID.Hex(),
			Action: "approve",
			MID:    "mod-a",
		})
		require.NoError(t, err)
		// Cùng một moderator bỏ phiếu lại chỉ giữ một phiếu
		assert.Equal(t, 1, result.Review.Stat.Approve)
	}
	assert.Equal(t, models.DraftTypePending, f.store.drafts[draft.ID.Hex()].Type)
	assert.Empty(t, f.promoter.inserted)
}

func TestSubmitAction_RetrialOnRejected(t *testing.T) {
	draft := pendingDraft()
	draft.Type = models.DraftTypeRejected
	draft.Review.Reject = []models.Vote{{MID: "mod-a", Reason: "spam"}, {MID: "mod-b", Reason: "spam"}}
	f := newSubmitFixture(optionmodels.Option{ApproveNum: 2, RejectNum: 2, ResetAllOnAction: true}, draft)

	result, err := f.svc.SubmitAction(context.Background(), dto.ActionRequest{
		CID:    draft.ID.Hex(),
		Action: "retrial",
		MID:    "mod-a",
	})
	require.NoError(t, err)
	assert.Contains(t, result.Message, "重审")

	saved := f.store.drafts[draft.ID.Hex()]
	assert.Equal(t, models.DraftTypePending, saved.Type)
	// Retrial chỉ xóa phiếu của người thao tác, kể cả khi bật reset_all_on_action
	require.Len(t, saved.Review.Reject, 1)
	assert.Equal(t, "mod-b", saved.Review.Reject[0].MID)
}

func TestSubmitAction_PersistFailureSkipsPublish(t *testing.T) {
	draft := pendingDraft()
	f := newSubmitFixture(optionmodels.Option{ApproveNum: 1, PublishDirect: true}, draft)
	f.store.updateErr = fmt.Errorf("ghi thất bại")

	_, err := f.svc.SubmitAction(context.Background(), dto.ActionRequest{
		CID:    draft.ID.Hex(),
		Action: "approveforce",
		MID:    "mod-a",
	})
	require.Error(t, err)

	// Lưu trạng thái lỗi thì không được phát hành ra nền tảng ngoài
	assert.Empty(t, f.promoter.published)
}

func TestSubmitAction_RawAndSender(t *testing.T) {
	draft := pendingDraft()
	f := newSubmitFixture(optionmodels.Option{ApproveNum: 1}, draft)

	result, err := f.svc.SubmitAction(context.Background(), dto.ActionRequest{
		CID:    draft.ID.Hex(),
		Action: "raw",
		MID:    "mod-a",
	})
	require.NoError(t, err)
	assert.Equal(t, "获取原始内容", result.Message)
	assert.Equal(t, draft.Content, result.Data)

	result, err = f.svc.SubmitAction(context.Background(), dto.ActionRequest{
		CID:    draft.ID.Hex(),
		Action: "sender",
		MID:    "mod-a",
	})
	require.NoError(t, err)
	assert.Equal(t, "获取原始内容", result.Message)
	assert.Equal(t, draft.Sender, result.Data)

	// Action đọc không ghi gì vào store
	assert.Empty(t, f.events)
}
