// Package tagger gọi dịch vụ gắn tag AI cho nội dung bài chờ duyệt.
package tagger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xiaofeiTM233/FlowHub/config"
	reviewmodels "github.com/xiaofeiTM233/FlowHub/internal/api/review/models"
)

// Client gọi dịch vụ tag từ xa (REVIEW_TAG_URL)
type Client struct {
	url        string
	httpClient *http.Client
}

// New tạo mới Client. URL rỗng nghĩa là dịch vụ chưa được cấu hình.
func New(cfg *config.Configuration) *Client {
	return &Client{
		url: cfg.ReviewTagURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured cho biết dịch vụ tag đã được cấu hình chưa
func (c *Client) Configured() bool {
	return c.url != ""
}

// tagResponse là phản hồi của dịch vụ tag
type tagResponse struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Data    map[string][]string `json:"data"`
}

// Tags gửi nội dung bài tới dịch vụ AI, trả về map nhóm tag → danh sách tag
func (c *Client) Tags(ctx context.Context, content reviewmodels.DraftContent) (map[string][]string, error) {
	body, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("标签服务返回 HTTP %d: %s", resp.StatusCode, string(raw))
	}

	var result tagResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("标签服务响应解析失败: %v", err)
	}
	if result.Code != 0 {
		return nil, fmt.Errorf("标签服务报错: %s", result.Message)
	}
	return result.Data, nil
}
