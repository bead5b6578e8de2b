package models

import (
	"github.com/xiaofeiTM233/FlowHub/internal/platform"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của Post
const (
	PostTypePending   = "pending"   // Đã được duyệt, chờ phát hành
	PostTypeDraft     = "draft"     // Tạo trực tiếp qua API publish, chưa phát hành
	PostTypePublished = "published" // Đã phát hành (chỉ chuyển sang deleted)
	PostTypeDeleted   = "deleted"   // Đã xóa trên các nền tảng (trạng thái cuối)
)

// PostSender chứa danh sách tài khoản đích của bài
type PostSender struct {
	Platforms []string `json:"platform" bson:"platform"` // Danh sách aid phát hành
}

// PostContent là nội dung bài sau khi được duyệt, bất biến
type PostContent struct {
	Text   string   `json:"text" bson:"text"`     // Nội dung văn bản
	Images []string `json:"images" bson:"images"` // Ảnh (base64), bao gồm ảnh duyệt
}

// Post là bài đã qua duyệt, đơn vị làm việc của orchestrator phát hành.
// Results lớn dần theo từng nền tảng, outcome success không bao giờ bị ghi đè.
type Post struct {
	ID  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của bài
	CID primitive.ObjectID `json:"cid,omitempty" bson:"cid,omitempty"` // ID bản thảo gốc

	Type      string      `json:"type" bson:"type" index:"single:1"` // Trạng thái bài
	Timestamp int64       `json:"timestamp" bson:"timestamp"`        // Thời gian đầu bài logic (ms)
	Sender    PostSender  `json:"sender" bson:"sender"`              // Tài khoản đích
	Content   PostContent `json:"content" bson:"content"`            // Nội dung bài

	Results map[string]platform.Outcome `json:"results,omitempty" bson:"results,omitempty"` // Kết quả phát hành theo aid

	Number int64 `json:"num,omitempty" bson:"num,omitempty"` // Số thứ tự bài (0 = chưa cấp)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
