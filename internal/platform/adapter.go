package platform

// Package platform chứa adapter phát hành nội dung lên các nền tảng bên ngoài
// (bilibili, QQ空间). Mỗi nền tảng implement interface Adapter và tự đăng ký
// vào registry của package qua hàm init.

import (
	"context"

	"github.com/xiaofeiTM233/FlowHub/internal/registry"
)

// Trạng thái của Outcome
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Account là thông tin tài khoản nền tảng mà adapter cần để gọi API.
// Adapter chỉ đọc, không bao giờ ghi lại credentials.
type Account struct {
	AID      string            // Định danh tài khoản trong hệ thống
	Platform string            // Loại nền tảng: bili, qzone
	UID      string            // UID trên nền tảng
	Auth     map[string]string // Thông tin đẩy tin (url, token, g_tk...)
	Cookies  map[string]string // Cookies phiên đăng nhập
}

// Outcome là kết quả chuẩn hóa của một lần phát hành trên một nền tảng.
// Một khi status là success thì không bao giờ bị ghi đè (idempotent).
type Outcome struct {
	Platform string                 `json:"platform" bson:"platform"`
	Status   string                 `json:"status" bson:"status"`
	Data     map[string]interface{} `json:"data,omitempty" bson:"data,omitempty"`
	Message  string                 `json:"message,omitempty" bson:"message,omitempty"`
}

// Adapter là contract mà mỗi nền tảng phải implement.
// Thêm nền tảng mới = implement interface này + đăng ký vào registry.
type Adapter interface {
	// Kind trả về loại nền tảng (bili, qzone)
	Kind() string

	// Upload tải một ảnh (base64) lên nền tảng, trả về asset reference
	Upload(ctx context.Context, acc *Account, imageBase64 string) (map[string]interface{}, error)

	// Publish phát hành nội dung với danh sách asset đã upload (giữ thứ tự)
	Publish(ctx context.Context, acc *Account, text string, assets []map[string]interface{}) (map[string]interface{}, error)

	// Delete xóa một bài đã phát hành theo ID gốc của nền tảng
	Delete(ctx context.Context, acc *Account, nativeID string) (map[string]interface{}, error)

	// Stat lấy số liệu thống kê của tài khoản
	Stat(ctx context.Context, acc *Account) (map[string]interface{}, error)

	// DeletableID trích xuất ID dùng để xóa từ kết quả phát hành.
	// Trả về chuỗi rỗng nếu không tìm thấy.
	DeletableID(outcome Outcome) string
}

// adapters chứa các adapter đã đăng ký, key là Kind
var adapters = registry.NewRegistry[Adapter]()

// Register đăng ký một adapter vào registry của package
func Register(a Adapter) {
	adapters.Register(a.Kind(), a)
}

// Get trả về adapter theo loại nền tảng
func Get(kind string) (Adapter, bool) {
	return adapters.Get(kind)
}

// Kinds trả về danh sách các nền tảng đã đăng ký
func Kinds() []string {
	return adapters.Names()
}

// Plus gói trọn quy trình upload-tất-cả-ảnh rồi publish thành một Outcome.
// Upload tuần tự để giữ thứ tự ảnh, mọi lỗi được chuyển thành Outcome error
// thay vì trả về error (cô lập lỗi theo nền tảng).
func Plus(ctx context.Context, a Adapter, acc *Account, text string, images []string) Outcome {
	assets := make([]map[string]interface{}, 0, len(images))
	for _, image := range images {
		asset, err := a.Upload(ctx, acc, image)
		if err != nil {
			return Outcome{Platform: a.Kind(), Status: StatusError, Message: err.Error()}
		}
		assets = append(assets, asset)
	}

	data, err := a.Publish(ctx, acc, text, assets)
	if err != nil {
		return Outcome{Platform: a.Kind(), Status: StatusError, Message: err.Error()}
	}

	return Outcome{Platform: a.Kind(), Status: StatusSuccess, Data: data}
}
