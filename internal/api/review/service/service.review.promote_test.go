package reviewsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	postmodels "github.com/xiaofeiTM233/FlowHub/internal/api/post/models"
	"github.com/xiaofeiTM233/FlowHub/internal/api/review/models"
)

func TestBuildPromotedPost(t *testing.T) {
	cid := primitive.NewObjectID()
	draft := models.Draft{
		ID:        cid,
		Type:      models.DraftTypeApproved,
		Timestamp: 1700000000000,
		Sender: models.DraftSender{
			UserID:    123,
			Nickname:  "张三",
			Platforms: []string{"bili-main", "qzone-main"},
		},
		Content: models.DraftContent{
			Text:   "hello",
			Images: []string{"img-gốc-1", "img-gốc-2"},
		},
		Images: []string{"img-render"},
		Num:    42,
	}

	post := BuildPromotedPost(&draft)

	assert.Equal(t, postmodels.PostTypePending, post.Type)
	assert.Equal(t, cid, post.CID, "post phải giữ back-link về bài gốc")
	assert.Equal(t, int64(1700000000000), post.Timestamp)
	assert.Equal(t, int64(42), post.Number)
	assert.Equal(t, []string{"bili-main", "qzone-main"}, post.Sender.Platforms)
	assert.Equal(t, "hello", post.Content.Text)

	// Ảnh render nối vào sau ảnh gốc, giữ nguyên thứ tự
	require.Equal(t, []string{"img-gốc-1", "img-gốc-2", "img-render"}, post.Content.Images)

	require.NotNil(t, post.Results)
	assert.Empty(t, post.Results, "bài mới chưa có kết quả phát hành")
}

func TestBuildPromotedPost_NoImages(t *testing.T) {
	draft := models.Draft{
		ID:      primitive.NewObjectID(),
		Content: models.DraftContent{Text: "chỉ có chữ"},
	}

	post := BuildPromotedPost(&draft)
	assert.Empty(t, post.Content.Images)
	assert.Equal(t, int64(0), post.Number, "chưa cấp số thì number bằng 0")
}
