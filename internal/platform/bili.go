package platform

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/google/uuid"
)

// Các endpoint của bilibili
const (
	biliUploadURL  = "https://api.bilibili.com/x/dynamic/feed/draw/upload_bfs"
	biliPublishURL = "https://api.bilibili.com/x/dynamic/feed/create/dyn"
	biliDeleteURL  = "https://api.bilibili.com/x/dynamic/feed/delete"
	biliStatURL    = "https://member.bilibili.com/x/web/data/index/stat"
	biliArticleURL = "https://member.bilibili.com/x/web/data/article"
)

// BiliAdapter phát hành động thái lên bilibili qua web API.
// CSRF token lấy từ cookie bili_jct.
type BiliAdapter struct{}

func init() {
	Register(&BiliAdapter{})
}

// Kind trả về loại nền tảng
func (b *BiliAdapter) Kind() string {
	return "bili"
}

// checkBiliCode kiểm tra trường code trong response của bilibili, 0 là thành công
func checkBiliCode(result map[string]interface{}) error {
	code, ok := result["code"].(float64)
	if !ok || code != 0 {
		message, _ := result["message"].(string)
		return fmt.Errorf("bilibili API 返回错误 (code %v): %s", result["code"], message)
	}
	return nil
}

// Upload tải ảnh (base64) lên kho ảnh động thái của bilibili
func (b *BiliAdapter) Upload(ctx context.Context, acc *Account, imageBase64 string) (map[string]interface{}, error) {
	if err := waitLimiter(ctx, acc.AID); err != nil {
		return nil, err
	}

	image, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, fmt.Errorf("base64 图片解码失败: %w", err)
	}

	csrf := acc.Cookies["bili_jct"]

	// Dựng form multipart với ảnh và các trường bắt buộc
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file_up"; filename="%s.png"`, uuid.NewString()))
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	writer.WriteField("biz", "new_dyn")
	writer.WriteField("category", "daily")
	writer.WriteField("csrf", csrf)
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, biliUploadURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Cookie", cookieHeader(acc.Cookies))
	req.Header.Set("Origin", "https://t.bilibili.com")
	req.Header.Set("Referer", "https://t.bilibili.com/")

	body, err := doRequest(req)
	if err != nil {
		return nil, err
	}
	result, err := decodeJSON(body)
	if err != nil {
		return nil, err
	}
	if err := checkBiliCode(result); err != nil {
		return nil, err
	}

	data := dataField(result)
	return map[string]interface{}{
		"img_src":    data["image_url"],
		"img_width":  data["image_width"],
		"img_height": data["image_height"],
		"img_size":   data["img_size"],
	}, nil
}

// Publish phát hành một động thái với text và danh sách ảnh đã upload
func (b *BiliAdapter) Publish(ctx context.Context, acc *Account, text string, assets []map[string]interface{}) (map[string]interface{}, error) {
	if err := waitLimiter(ctx, acc.AID); err != nil {
		return nil, err
	}

	csrf := acc.Cookies["bili_jct"]

	pics := assets
	if pics == nil {
		pics = []map[string]interface{}{}
	}
	payload := map[string]interface{}{
		"dyn_req": map[string]interface{}{
			"content": map[string]interface{}{
				"contents": []map[string]interface{}{
					{"raw_text": text, "type": 1, "biz_id": ""},
				},
			},
			"pics":  pics,
			"scene": 2,
			"meta": map[string]interface{}{
				"app_meta": map[string]interface{}{
					"from":     "create.dynamic.web",
					"mobi_app": "web",
				},
			},
		},
	}

	body, err := postBiliJSON(ctx, fmt.Sprintf("%s?csrf=%s", biliPublishURL, csrf), acc, payload)
	if err != nil {
		return nil, err
	}
	result, err := decodeJSON(body)
	if err != nil {
		return nil, err
	}
	if err := checkBiliCode(result); err != nil {
		return nil, err
	}

	// data chứa dyn_id_str dùng để xóa về sau
	return dataField(result), nil
}

// Delete xóa một động thái theo dyn_id_str
func (b *BiliAdapter) Delete(ctx context.Context, acc *Account, nativeID string) (map[string]interface{}, error) {
	if err := waitLimiter(ctx, acc.AID); err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"dyn_id_str": nativeID,
		"csrf":       acc.Cookies["bili_jct"],
	}

	body, err := postBiliJSON(ctx, biliDeleteURL, acc, payload)
	if err != nil {
		return nil, err
	}
	result, err := decodeJSON(body)
	if err != nil {
		return nil, err
	}
	if err := checkBiliCode(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Stat lấy số liệu trung tâm sáng tạo (video + chuyên mục)
func (b *BiliAdapter) Stat(ctx context.Context, acc *Account) (map[string]interface{}, error) {
	if err := waitLimiter(ctx, acc.AID); err != nil {
		return nil, err
	}

	video, err := getBiliJSON(ctx, biliStatURL, acc)
	if err != nil {
		return nil, err
	}
	article, err := getBiliJSON(ctx, biliArticleURL, acc)
	if err != nil {
		return nil, err
	}

	videoData := dataField(video)
	// Bỏ danh sách fan 30 ngày, quá lớn để lưu vào stats
	delete(videoData, "fan_recent_thirty")

	return map[string]interface{}{
		"video":   videoData,
		"article": dataField(article),
	}, nil
}

// DeletableID trích xuất dyn_id_str từ kết quả phát hành
func (b *BiliAdapter) DeletableID(outcome Outcome) string {
	if outcome.Data == nil {
		return ""
	}
	id, _ := outcome.Data["dyn_id_str"].(string)
	return id
}

// postBiliJSON gửi POST JSON kèm cookie tới API bilibili
func postBiliJSON(ctx context.Context, url string, acc *Account, payload map[string]interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", cookieHeader(acc.Cookies))
	return doRequest(req)
}

// getBiliJSON gửi GET kèm cookie và parse JSON trả về
func getBiliJSON(ctx context.Context, url string, acc *Account) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cookie", cookieHeader(acc.Cookies))

	body, err := doRequest(req)
	if err != nil {
		return nil, err
	}
	return decodeJSON(body)
}
