package global

import (
	"github.com/xiaofeiTM233/FlowHub/config"
	"github.com/xiaofeiTM233/FlowHub/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_Review_CollectionName chứa tên các collection trong MongoDB
type MongoDB_Review_CollectionName struct {
	ReviewDrafts string // Tên collection cho bài chờ duyệt
	Posts        string // Tên collection cho bài đã phát hành
	Accounts     string // Tên collection cho tài khoản nền tảng
	Options      string // Tên collection cho cấu hình vận hành (singleton)
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server
var MongoDB_ColNames = MongoDB_Review_CollectionName{
	ReviewDrafts: "review_drafts",
	Posts:        "posts",
	Accounts:     "accounts",
	Options:      "options",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
