package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của bài chờ duyệt
const (
	DraftTypeDraft    = "draft"    // Mới nhận, chưa vào hàng duyệt
	DraftTypePending  = "pending"  // Đang chờ duyệt
	DraftTypeApproved = "approved" // Đã được duyệt
	DraftTypeRejected = "rejected" // Đã bị từ chối
)

// Vote là một phiếu duyệt của moderator. Mỗi moderator chỉ giữ tối đa một phiếu.
type Vote struct {
	MID    string `json:"mid" bson:"mid"`       // ID của moderator bỏ phiếu
	Reason string `json:"reason" bson:"reason"` // Lý do bỏ phiếu
}

// Comment là ghi chú của moderator trên bài (bao gồm cả log thao tác force/block/retrial)
type Comment struct {
	MID       string `json:"mid" bson:"mid"`                             // ID của moderator
	Reason    string `json:"reason" bson:"reason"`                       // Nội dung ghi chú
	Timestamp int64  `json:"timestamp,omitempty" bson:"timestamp,omitempty"` // Thời điểm ghi chú (ms)
}

// ReviewStat là số phiếu đã đếm, luôn được tính lại từ độ dài mảng phiếu
type ReviewStat struct {
	Approve int `json:"approve" bson:"approve"` // Số phiếu thuận
	Reject  int `json:"reject" bson:"reject"`   // Số phiếu chống
}

// ReviewState chứa toàn bộ trạng thái duyệt của một bài
type ReviewState struct {
	Approve  []Vote     `json:"approve" bson:"approve"`   // Danh sách phiếu thuận
	Reject   []Vote     `json:"reject" bson:"reject"`     // Danh sách phiếu chống
	Comments []Comment  `json:"comments" bson:"comments"` // Danh sách ghi chú
	Stat     ReviewStat `json:"stat" bson:"stat"`         // Số phiếu đã đếm
}

// DraftSender là danh tính gốc của người gửi bài.
// Anonymous bật thì content hiển thị danh tính ẩn danh, danh tính gốc vẫn giữ ở đây.
type DraftSender struct {
	UserID    int64    `json:"userid" bson:"userid"`     // ID người gửi
	Nickname  string   `json:"nickname" bson:"nickname"` // Tên hiển thị gốc
	Anonymous bool     `json:"nick" bson:"nick"`         // Đang ẩn danh hay không
	Platforms []string `json:"platform" bson:"platform"` // Danh sách aid sẽ phát hành khi duyệt xong
}

// DraftContent là nội dung hiển thị của bài (danh tính trong này có thể đã bị ẩn danh hóa)
type DraftContent struct {
	UserID   int64    `json:"userid" bson:"userid"`                         // ID hiển thị
	Nickname string   `json:"nickname" bson:"nickname"`                     // Tên hiển thị
	Title    string   `json:"title,omitempty" bson:"title,omitempty"`       // Tiêu đề (nếu có)
	Text     string   `json:"text,omitempty" bson:"text,omitempty"`         // Nội dung văn bản
	Images   []string `json:"images,omitempty" bson:"images,omitempty"`     // Ảnh đính kèm của người gửi
}

// Draft là bài chờ duyệt trong collection review_drafts
type Draft struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của bài
	Type      string             `json:"type" bson:"type"`                  // Trạng thái: draft | pending | approved | rejected
	Timestamp int64              `json:"timestamp" bson:"timestamp"`        // Thời điểm gửi bài (ms), dùng làm mã tra cứu cho người gửi
	PID       primitive.ObjectID `json:"pid,omitempty" bson:"pid,omitempty"` // ID bài Post được tạo ra khi duyệt xong

	Sender  DraftSender  `json:"sender" bson:"sender"`   // Danh tính gốc của người gửi
	Content DraftContent `json:"content" bson:"content"` // Nội dung hiển thị
	Review  ReviewState  `json:"review" bson:"review"`   // Trạng thái duyệt

	Num    int64               `json:"num,omitempty" bson:"num,omitempty"`       // Số thứ tự bài (0 = chưa cấp)
	Tags   map[string][]string `json:"tags,omitempty" bson:"tags,omitempty"`     // Tag do dịch vụ AI gắn
	Images []string            `json:"images,omitempty" bson:"images,omitempty"` // Ảnh render dùng cho duyệt, nối vào bài khi phát hành

	CreatedAt int64 `json:"createdAt,omitempty" bson:"createdAt,omitempty"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"` // Thời gian cập nhật
}

// AnonymousNickname và AnonymousUserID là danh tính hiển thị khi bài ở chế độ ẩn danh
const (
	AnonymousNickname = "匿名用户"
	AnonymousUserID   = int64(10000)
)
