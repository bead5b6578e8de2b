// Package notifier đẩy thông báo duyệt bài ra kênh ngoài (OneBot, email).
// Mọi hàm đều best-effort: lỗi được trả về cho caller ghi log, không được
// làm fail thao tác duyệt.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/xiaofeiTM233/FlowHub/config"
	optionmodels "github.com/xiaofeiTM233/FlowHub/internal/api/option/models"
	reviewmodels "github.com/xiaofeiTM233/FlowHub/internal/api/review/models"
	"github.com/xiaofeiTM233/FlowHub/internal/platform"
)

// Notifier gửi thông báo tới nhóm duyệt qua OneBot và mirror qua SMTP khi cấu hình
type Notifier struct {
	cfg        *config.Configuration
	httpClient *http.Client
}

// New tạo mới Notifier
func New(cfg *config.Configuration) *Notifier {
	return &Notifier{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// buildReviewMessage dựng nội dung tin nhắn OneBot cho một bài chờ duyệt.
// Ảnh render được nhúng dạng CQ code base64 để nhóm duyệt xem trực tiếp.
func buildReviewMessage(draft *reviewmodels.Draft, image string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("收到新投稿 %s\n", draft.ID.Hex()))
	sb.WriteString(fmt.Sprintf("timestamp: %d\n", draft.Timestamp))
	if draft.Content.Title != "" {
		sb.WriteString(draft.Content.Title + "\n")
	}
	if image != "" {
		sb.WriteString(fmt.Sprintf("[CQ:image,file=base64://%s]", image))
	} else if draft.Content.Text != "" {
		sb.WriteString(draft.Content.Text)
	}
	return sb.String()
}

// PushReview đẩy bài chờ duyệt vào nhóm duyệt qua HTTP API của OneBot.
// Endpoint và token lấy từ account đẩy tin (option.review_push_platform),
// fallback về cấu hình server khi account không có.
func (n *Notifier) PushReview(ctx context.Context, account *platform.Account, draft *reviewmodels.Draft, image string, option *optionmodels.Option) (map[string]interface{}, error) {
	baseURL := ""
	token := ""
	if account != nil {
		baseURL = account.Auth["url"]
		token = account.Auth["token"]
	}
	if baseURL == "" {
		baseURL = n.cfg.OneBotURL
		token = n.cfg.OneBotAccessToken
	}
	if baseURL == "" {
		return nil, fmt.Errorf("未配置 OneBot 推送地址")
	}

	groupID := option.ReviewPushGroup
	if groupID == 0 {
		groupID = n.cfg.OneBotGroupID
	}

	payload := map[string]interface{}{
		"group_id": groupID,
		"message":  buildReviewMessage(draft, image),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/send_group_msg?access_token=%s", strings.TrimRight(baseURL, "/"), token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("OneBot 返回 HTTP %d: %s", resp.StatusCode, string(raw))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("OneBot 响应解析失败: %v", err)
	}

	// Mirror qua email nếu có cấu hình SMTP, lỗi email không làm fail push
	if n.cfg.SMTPHost != "" {
		if err := n.sendMail(draft); err != nil {
			result["mail_error"] = err.Error()
		}
	}
	return result, nil
}

// sendMail gửi thông báo bài mới qua SMTP
func (n *Notifier) sendMail(draft *reviewmodels.Draft) error {
	if n.cfg.SMTPFrom == "" || n.cfg.SMTPTo == "" {
		return fmt.Errorf("缺少 SMTP_FROM 或 SMTP_TO 配置")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.SMTPFrom)
	m.SetHeader("To", strings.Split(n.cfg.SMTPTo, ",")...)
	m.SetHeader("Subject", fmt.Sprintf("新投稿待审 %s", draft.ID.Hex()))

	var body strings.Builder
	body.WriteString(fmt.Sprintf("投稿 %s (timestamp %d) 已进入待审队列。\n", draft.ID.Hex(), draft.Timestamp))
	if draft.Content.Title != "" {
		body.WriteString("标题: " + draft.Content.Title + "\n")
	}
	if draft.Content.Text != "" {
		body.WriteString(draft.Content.Text + "\n")
	}
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(n.cfg.SMTPHost, n.cfg.SMTPPort, n.cfg.SMTPUser, n.cfg.SMTPPassword)
	return d.DialAndSend(m)
}
