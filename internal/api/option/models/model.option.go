package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Option là document cấu hình vận hành duy nhất (singleton, _id cố định).
// Ngưỡng duyệt bằng 0 nghĩa là tắt luật đó.
type Option struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID cố định 000000000000000000000000

	Description        string   `json:"description" bson:"description"`                    // Mô tả hệ thống
	DefaultPlatforms   []string `json:"defaultPlatform" bson:"default_platform"`           // Danh sách aid phát hành mặc định
	ReviewPushPlatform string   `json:"reviewPushPlatform" bson:"review_push_platform"`    // aid tài khoản dùng để đẩy tin duyệt
	ReviewPushGroup    int64    `json:"reviewPushGroup" bson:"review_push_group"`          // ID nhóm nhận tin duyệt
	ReviewPushDirect   bool     `json:"reviewPushDirect" bson:"review_push_direct"`        // Đẩy tin duyệt ngay khi nhận bài
	PublishDirect      bool     `json:"publishDirect" bson:"publish_direct"`               // Phát hành ngay khi bài được duyệt
	ApproveNum         int      `json:"approveNum" bson:"approve_num"`                     // Ngưỡng phiếu thuận
	RejectNum          int      `json:"rejectNum" bson:"reject_num"`                       // Ngưỡng phiếu chống
	TotalNum           int      `json:"totalNum" bson:"total_num"`                         // Ngưỡng chênh lệch phiếu
	LastNumber         int64    `json:"lastNumber" bson:"last_number"`                     // Số thứ tự bài gần nhất (bộ đếm)
	ResetAllOnAction   bool     `json:"resetAllOnAction" bson:"reset_all_on_action"`       // Chính sách xóa phiếu: true = xóa hết, false = chỉ xóa phiếu của người thao tác

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// DefaultOption trả về cấu hình mặc định dùng khi khởi tạo hệ thống
func DefaultOption() Option {
	return Option{
		Description:      "FlowHub 稿件",
		DefaultPlatforms: []string{},
		ReviewPushDirect: true,
		PublishDirect:    true,
		ApproveNum:       1,
		RejectNum:        1,
		TotalNum:         0,
		LastNumber:       0,
	}
}
