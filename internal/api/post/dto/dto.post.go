package dto

// PostCreateInput là dữ liệu đầu vào khi tạo bài trực tiếp qua API publish
type PostCreateInput struct {
	Type      string            `json:"type,omitempty"`
	Timestamp int64             `json:"timestamp,omitempty" validate:"omitempty,min=0"`
	Sender    PostSenderInput   `json:"sender"`
	Content   PostContentInput  `json:"content"`
}

// PostSenderInput chứa danh sách tài khoản đích
type PostSenderInput struct {
	Platforms []string `json:"platform" validate:"required,min=1"`
}

// PostContentInput là nội dung bài
type PostContentInput struct {
	Text   string   `json:"text"`
	Images []string `json:"images,omitempty"`
}

// PostUpdateInput là dữ liệu đầu vào khi cập nhật bài (chỉ trước khi phát hành)
type PostUpdateInput struct {
	Type string `json:"type,omitempty" bson:"type,omitempty"`
}

// PublishInput là body của POST /publish: có _id thì phát hành bài sẵn có,
// không có thì tạo bài mới từ payload rồi phát hành.
type PublishInput struct {
	ID        string            `json:"_id,omitempty"`
	Type      string            `json:"type,omitempty"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Sender    *PostSenderInput  `json:"sender,omitempty"`
	Content   *PostContentInput `json:"content,omitempty"`
}

// DeleteInput là body của POST /posts/delete
type DeleteInput struct {
	ID string `json:"_id" validate:"required,object_id"`
}
