package notifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	reviewmodels "github.com/xiaofeiTM233/FlowHub/internal/api/review/models"
)

func TestBuildReviewMessage_WithImage(t *testing.T) {
	draft := &reviewmodels.Draft{
		ID:        primitive.NewObjectID(),
		Timestamp: 1700000000000,
		Content: reviewmodels.DraftContent{
			Title: "新投稿标题",
			Text:  "正文内容",
		},
	}

	message := buildReviewMessage(draft, "aW1hZ2U=")

	assert.True(t, strings.HasPrefix(message, "收到新投稿 "+draft.ID.Hex()))
	assert.Contains(t, message, "timestamp: 1700000000000")
	assert.Contains(t, message, "新投稿标题")

	// Có ảnh thì nhúng CQ code, không lặp lại text
	assert.Contains(t, message, "[CQ:image,file=base64://aW1hZ2U=]")
	assert.NotContains(t, message, "正文内容")
}

func TestBuildReviewMessage_TextFallback(t *testing.T) {
	draft := &reviewmodels.Draft{
		ID:      primitive.NewObjectID(),
		Content: reviewmodels.DraftContent{Text: "chỉ có chữ"},
	}

	message := buildReviewMessage(draft, "")

	assert.Contains(t, message, "chỉ có chữ")
	assert.NotContains(t, message, "CQ:image")
}

func TestBuildReviewMessage_Minimal(t *testing.T) {
	draft := &reviewmodels.Draft{ID: primitive.NewObjectID()}
	message := buildReviewMessage(draft, "")

	assert.Contains(t, message, draft.ID.Hex())
	assert.NotContains(t, message, "CQ:image")
}
