// Package render gọi dịch vụ render từ xa để dựng ảnh/HTML cho bài chờ duyệt.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/xiaofeiTM233/FlowHub/config"
	reviewmodels "github.com/xiaofeiTM233/FlowHub/internal/api/review/models"
)

// Các output type dịch vụ render hỗ trợ
const (
	OutputBase64 = "base64" // Ảnh PNG mã hóa base64
	OutputHTML   = "html"   // HTML đã điền template
)

// Client gọi dịch vụ render từ xa (RENDER_URL)
type Client struct {
	url        string
	template   string
	httpClient *http.Client
}

// New tạo mới Client và nạp template HTML từ đĩa.
// Template không có thì dịch vụ render tự dùng template mặc định phía nó.
func New(cfg *config.Configuration) *Client {
	return &Client{
		url:      cfg.RenderURL,
		template: loadTemplate(),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Configured cho biết dịch vụ render đã được cấu hình chưa
func (c *Client) Configured() bool {
	return c.url != ""
}

// loadTemplate tìm file models/template.html từ thư mục hiện tại trở lên
func loadTemplate() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, "models", "template.html")
		if data, err := os.ReadFile(path); err == nil {
			return string(data)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// buildData dựng payload data cho template: nội dung bài cộng thêm field time
// hiển thị theo múi giờ UTC+8
func buildData(content reviewmodels.DraftContent, timestamp int64) map[string]interface{} {
	displayTime := time.UnixMilli(timestamp).UTC().Add(8 * time.Hour).Format("2006-01-02 15:04:05")
	return map[string]interface{}{
		"userid":   content.UserID,
		"nickname": content.Nickname,
		"title":    content.Title,
		"text":     content.Text,
		"images":   content.Images,
		"time":     displayTime,
	}
}

// Render gửi template và nội dung tới dịch vụ render, trả về kết quả theo newType
// (base64 cho ảnh, html cho trang preview)
func (c *Client) Render(ctx context.Context, content reviewmodels.DraftContent, timestamp int64, newType string) (string, error) {
	if c.url == "" {
		return "", fmt.Errorf("未设置渲染函数")
	}

	payload := map[string]interface{}{
		"template": c.template,
		"data":     buildData(content, timestamp),
		"newType":  newType,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("渲染服务返回 HTTP %d: %s", resp.StatusCode, string(raw))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("渲染服务响应解析失败: %v", err)
	}
	out, ok := result[newType].(string)
	if !ok || out == "" {
		return "", fmt.Errorf("渲染服务响应缺少字段 %s", newType)
	}
	return out, nil
}
