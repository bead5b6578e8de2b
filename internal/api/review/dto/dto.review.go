package dto

// ActionRequest là dữ liệu đầu vào cho một thao tác duyệt bài.
// Bài được tra theo CID (ObjectID hex) hoặc Timestamp khi không có CID.
type ActionRequest struct {
	CID       string `json:"cid" validate:"omitempty,object_id"` // ID bài chờ duyệt
	Timestamp int64  `json:"timestamp"`                          // Mã tra cứu thay thế khi không có cid
	Action    string `json:"action" validate:"required,review_action"`
	MID       string `json:"mid"`    // ID moderator, fallback về moderator context khi rỗng
	Reason    string `json:"reason"` // Lý do, mặc định "无理由"
	Num       int64  `json:"num"`    // Số thứ tự cho action num
}

// DraftSenderInput là danh tính người gửi trong payload tiếp nhận bài
type DraftSenderInput struct {
	UserID    int64    `json:"userid" bson:"userid,omitempty"`
	Nickname  string   `json:"nickname" bson:"nickname,omitempty" validate:"omitempty,no_xss"`
	Anonymous bool     `json:"nick" bson:"nick,omitempty"`
	Platforms []string `json:"platform" bson:"platform,omitempty"`
}

// DraftContentInput là nội dung bài trong payload tiếp nhận bài
type DraftContentInput struct {
	UserID   int64    `json:"userid" bson:"userid,omitempty"`
	Nickname string   `json:"nickname" bson:"nickname,omitempty" validate:"omitempty,no_xss"`
	Title    string   `json:"title" bson:"title,omitempty" validate:"omitempty,no_xss"`
	Text     string   `json:"text" bson:"text,omitempty" validate:"omitempty,no_xss"`
	Images   []string `json:"images" bson:"images,omitempty"`
}

// DraftCreateInput là dữ liệu đầu vào khi tạo bài chờ duyệt qua CRUD
type DraftCreateInput struct {
	Type      string             `json:"type" validate:"omitempty,oneof=draft pending approved rejected"`
	Timestamp int64              `json:"timestamp"`
	Sender    *DraftSenderInput  `json:"sender"`
	Content   *DraftContentInput `json:"content" validate:"required"`
}

// DraftUpdateInput là dữ liệu đầu vào khi cập nhật bài chờ duyệt qua CRUD
type DraftUpdateInput struct {
	Type    *string            `json:"type" bson:"type,omitempty" validate:"omitempty,oneof=draft pending approved rejected"`
	Sender  *DraftSenderInput  `json:"sender" bson:"sender,omitempty"`
	Content *DraftContentInput `json:"content" bson:"content,omitempty"`
	Num     *int64             `json:"num" bson:"num,omitempty"`
}

// RenderRequest là payload tiếp nhận bài từ client gửi bài.
// CID có thì cập nhật bài sẵn có, không có thì tạo bài mới.
// Type điều khiển đầu ra: render (PNG), renderhtml (HTML), post (vào hàng duyệt).
type RenderRequest struct {
	CID       string             `json:"cid" validate:"omitempty,object_id"`
	Type      string             `json:"type"`
	Timestamp int64              `json:"timestamp"`
	Sender    *DraftSenderInput  `json:"sender"`
	Content   *DraftContentInput `json:"content"`
}
