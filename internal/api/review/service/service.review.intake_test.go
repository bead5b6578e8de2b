package reviewsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaofeiTM233/FlowHub/internal/api/review/dto"
	"github.com/xiaofeiTM233/FlowHub/internal/api/review/models"
)

func TestDraftFromIntake(t *testing.T) {
	input := dto.RenderRequest{
		Timestamp: 1700000000000,
		Sender: &dto.DraftSenderInput{
			UserID:    123,
			Nickname:  "张三",
			Platforms: []string{"bili-main"},
		},
		Content: &dto.DraftContentInput{
			Title:  "标题",
			Text:   "正文",
			Images: []string{"img-1"},
		},
	}

	draft := draftFromIntake(input)

	assert.Equal(t, models.DraftTypeDraft, draft.Type)
	assert.Equal(t, int64(1700000000000), draft.Timestamp)
	assert.Equal(t, int64(123), draft.Sender.UserID)
	assert.Equal(t, []string{"bili-main"}, draft.Sender.Platforms)
	assert.Equal(t, "标题", draft.Content.Title)

	// Danh tính hiển thị mặc định lấy từ người gửi khi content không tự khai
	assert.Equal(t, "张三", draft.Content.Nickname)
	assert.Equal(t, int64(123), draft.Content.UserID)

	// Mảng phiếu phải được khởi tạo rỗng, không phải nil
	require.NotNil(t, draft.Review.Approve)
	require.NotNil(t, draft.Review.Reject)
	require.NotNil(t, draft.Review.Comments)
	assert.Empty(t, draft.Review.Approve)
}

func TestDraftFromIntake_Anonymous(t *testing.T) {
	input := dto.RenderRequest{
		Sender: &dto.DraftSenderInput{
			UserID:    123,
			Nickname:  "张三",
			Anonymous: true,
		},
		Content: &dto.DraftContentInput{Text: "匿名投稿"},
	}

	draft := draftFromIntake(input)

	// Danh tính gốc vẫn giữ trong sender để khôi phục khi tắt ẩn danh
	assert.Equal(t, "张三", draft.Sender.Nickname)
	assert.Equal(t, int64(123), draft.Sender.UserID)
	assert.True(t, draft.Sender.Anonymous)

	// Danh tính hiển thị bị thay bằng placeholder
	assert.Equal(t, models.AnonymousNickname, draft.Content.Nickname)
	assert.Equal(t, models.AnonymousUserID, draft.Content.UserID)
}

func TestDraftFromIntake_ContentIdentityKept(t *testing.T) {
	input := dto.RenderRequest{
		Sender: &dto.DraftSenderInput{UserID: 123, Nickname: "张三"},
		Content: &dto.DraftContentInput{
			UserID:   456,
			Nickname: "小号",
			Text:     "发小号",
		},
	}

	draft := draftFromIntake(input)

	// Content tự khai danh tính thì không bị sender ghi đè
	assert.Equal(t, "小号", draft.Content.Nickname)
	assert.Equal(t, int64(456), draft.Content.UserID)
}

func TestDraftFromIntake_NilPayloads(t *testing.T) {
	draft := draftFromIntake(dto.RenderRequest{})

	assert.Equal(t, models.DraftTypeDraft, draft.Type)
	assert.Zero(t, draft.Sender.UserID)
	assert.Empty(t, draft.Content.Text)
}
