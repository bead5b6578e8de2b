package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account đại diện cho một tài khoản nền tảng bên ngoài (bili, qzone).
// Adapter chỉ đọc credentials, chỉ worker thống kê được ghi lại stats.
type Account struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của tài khoản

	AID      string                 `json:"aid" bson:"aid" index:"unique"`             // Định danh tài khoản trong hệ thống (duy nhất)
	Platform string                 `json:"platform" bson:"platform" index:"single:1"` // Loại nền tảng: bili, qzone
	UID      string                 `json:"uid" bson:"uid"`                            // UID trên nền tảng
	Auth     map[string]string      `json:"auth,omitempty" bson:"auth,omitempty"`      // Thông tin đẩy tin (url, token, uin, g_tk)
	Cookies  map[string]string      `json:"cookies,omitempty" bson:"cookies,omitempty"` // Cookies phiên đăng nhập
	Stats    map[string]interface{} `json:"stats,omitempty" bson:"stats,omitempty"`    // Số liệu thống kê gần nhất

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
