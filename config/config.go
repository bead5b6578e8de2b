package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
// Nó chứa thông tin cơ sở dữ liệu và các dịch vụ bên ngoài
type Configuration struct {
	InitMode              bool   `env:"INITMODE" envDefault:"false"`               // Chế độ khởi tạo
	Address               string `env:"ADDRESS" envDefault:":8080"`                // Địa chỉ server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Render Service Configuration
	RenderURL string `env:"RENDER_URL"` // URL dịch vụ render ảnh bài viết (rỗng = tắt render)

	// AI Tag Service Configuration (optional)
	ReviewTagURL string `env:"REVIEW_TAG_URL"` // URL dịch vụ gắn tag AI (rỗng = tắt)

	// OneBot Push Configuration (optional - đẩy bài mới vào nhóm duyệt)
	OneBotURL         string `env:"ONEBOT_URL"`          // HTTP API của OneBot (rỗng = tắt push)
	OneBotAccessToken string `env:"ONEBOT_ACCESS_TOKEN"` // Access token cho OneBot API (optional)
	OneBotGroupID     int64  `env:"ONEBOT_GROUP_ID"`     // ID nhóm nhận thông báo duyệt bài

	// SMTP Notification Configuration (optional - thông báo qua email)
	SMTPHost     string `env:"SMTP_HOST"`     // SMTP host (rỗng = tắt email)
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`     // Tài khoản SMTP
	SMTPPassword string `env:"SMTP_PASSWORD"` // Mật khẩu SMTP
	SMTPFrom     string `env:"SMTP_FROM"`     // Địa chỉ người gửi
	SMTPTo       string `env:"SMTP_TO"`       // Danh sách người nhận phân cách bằng dấu phẩy

	// Platform Rate Limit (requests/giây khi gọi API nền tảng)
	PlatformRateLimit float64 `env:"PLATFORM_RATE_LIMIT" envDefault:"2"`

	// Stats Worker Configuration
	StatsInterval int `env:"STATS_INTERVAL" envDefault:"3600"` // Chu kỳ làm mới số liệu tài khoản (giây, 0 = tắt)

	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
