package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Các endpoint của QQ空间 (QZone)
const (
	qzoneUploadURL  = "https://up.qzone.qq.com/cgi-bin/upload/cgi_upload_image"
	qzonePublishURL = "https://user.qzone.qq.com/proxy/domain/taotao.qzone.qq.com/cgi-bin/emotion_cgi_publish_v6"
	qzoneDeleteURL  = "https://user.qzone.qq.com/proxy/domain/taotao.qzone.qq.com/cgi-bin/emotion_cgi_delete_v6"
	qzoneVisitorURL = "https://h5.qzone.qq.com/proxy/domain/g.qzone.qq.com/cgi-bin/friendshow/cgi_get_visitor_more"
)

// QzoneAdapter phát hành 说说 lên QQ空间 qua web API.
// uin và g_tk nằm trong Auth của tài khoản, cookies là phiên đăng nhập web.
type QzoneAdapter struct{}

func init() {
	Register(&QzoneAdapter{})
}

// Kind trả về loại nền tảng
func (q *QzoneAdapter) Kind() string {
	return "qzone"
}

// parseJsonp bóc phần JSON ra khỏi wrapper _Callback(...) của QZone
func parseJsonp(body string) (map[string]interface{}, error) {
	start := strings.Index(body, "(")
	end := strings.LastIndex(body, ")")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("响应不是 jsonp 格式")
	}
	return decodeJSON([]byte(body[start+1 : end]))
}

// Upload tải ảnh (base64) lên album tạm của QZone
func (q *QzoneAdapter) Upload(ctx context.Context, acc *Account, imageBase64 string) (map[string]interface{}, error) {
	if err := waitLimiter(ctx, acc.AID); err != nil {
		return nil, err
	}

	uin := acc.Auth["uin"]
	gtk := acc.Auth["g_tk"]

	form := url.Values{}
	form.Set("filename", "filename")
	form.Set("uin", uin)
	form.Set("skey", acc.Cookies["skey"])
	form.Set("p_uin", uin)
	form.Set("p_skey", acc.Cookies["p_skey"])
	form.Set("uploadtype", "1")
	form.Set("albumtype", "7")
	form.Set("base64", "1")
	form.Set("picture", imageBase64)
	form.Set("qzreferrer", fmt.Sprintf("https://user.qzone.qq.com/%s", uin))

	reqURL := fmt.Sprintf("%s?g_tk=%s", qzoneUploadURL, gtk)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cookie", cookieHeader(acc.Cookies))
	req.Header.Set("Referer", fmt.Sprintf("https://user.qzone.qq.com/%s", uin))

	body, err := doRequest(req)
	if err != nil {
		return nil, err
	}
	result, err := parseJsonp(string(body))
	if err != nil {
		return nil, err
	}
	if ret, ok := result["ret"].(float64); ok && ret != 0 {
		msg, _ := result["msg"].(string)
		return nil, fmt.Errorf("QZone 上传返回错误 (ret %v): %s", result["ret"], msg)
	}

	data := dataField(result)
	if len(data) == 0 {
		data = result
	}
	return data, nil
}

// Publish phát hành một 说说 với text và danh sách ảnh đã upload
func (q *QzoneAdapter) Publish(ctx context.Context, acc *Account, text string, assets []map[string]interface{}) (map[string]interface{}, error) {
	if err := waitLimiter(ctx, acc.AID); err != nil {
		return nil, err
	}

	uin := acc.Auth["uin"]
	gtk := acc.Auth["g_tk"]

	form := url.Values{}
	form.Set("syn_tweet_verson", "1")
	form.Set("paramstr", "1")
	form.Set("con", text)
	form.Set("feedversion", "1")
	form.Set("ver", "1")
	form.Set("ugc_right", "1")
	form.Set("hostuin", uin)
	form.Set("code_version", "1")
	form.Set("format", "json")

	// Ghép ảnh đã upload vào richval/pic_bo theo thứ tự
	if len(assets) > 0 {
		richvals := make([]string, 0, len(assets))
		picBos := make([]string, 0, len(assets))
		for _, asset := range assets {
			albumid, _ := asset["albumid"].(string)
			lloc, _ := asset["lloc"].(string)
			sloc, _ := asset["sloc"].(string)
			picType, _ := asset["type"].(float64)
			height, _ := asset["height"].(float64)
			width, _ := asset["width"].(float64)
			richvals = append(richvals, fmt.Sprintf(",%s,%s,%s,,%d,%d,,,%d", albumid, lloc, sloc, int(picType), int(height), int(width)))

			urlStr, _ := asset["url"].(string)
			if idx := strings.Index(urlStr, "&bo="); idx >= 0 {
				picBos = append(picBos, urlStr[idx+4:])
			}
		}
		form.Set("richtype", "1")
		form.Set("richval", strings.Join(richvals, "\t"))
		form.Set("pic_bo", strings.Join(picBos, ","))
	}

	reqURL := fmt.Sprintf("%s?g_tk=%s", qzonePublishURL, gtk)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cookie", cookieHeader(acc.Cookies))
	req.Header.Set("Referer", fmt.Sprintf("https://user.qzone.qq.com/%s", uin))

	body, err := doRequest(req)
	if err != nil {
		return nil, err
	}
	result, err := decodeJSON(body)
	if err != nil {
		return nil, err
	}
	if code, ok := result["code"].(float64); ok && code != 0 {
		msg, _ := result["message"].(string)
		return nil, fmt.Errorf("QZone 发布返回错误 (code %v): %s", result["code"], msg)
	}

	// t1_tid là ID dùng để xóa về sau
	if _, ok := result["t1_tid"]; !ok {
		if tid, ok := result["tid"].(string); ok {
			result["t1_tid"] = tid
		}
	}
	return result, nil
}

// Delete xóa một 说说 theo t1_tid
func (q *QzoneAdapter) Delete(ctx context.Context, acc *Account, nativeID string) (map[string]interface{}, error) {
	if err := waitLimiter(ctx, acc.AID); err != nil {
		return nil, err
	}

	uin := acc.Auth["uin"]
	gtk := acc.Auth["g_tk"]

	form := url.Values{}
	form.Set("hostuin", uin)
	form.Set("tid", nativeID)
	form.Set("t1_source", "1")
	form.Set("code_version", "1")
	form.Set("format", "json")

	reqURL := fmt.Sprintf("%s?g_tk=%s", qzoneDeleteURL, gtk)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cookie", cookieHeader(acc.Cookies))
	req.Header.Set("Referer", fmt.Sprintf("https://user.qzone.qq.com/%s", uin))

	body, err := doRequest(req)
	if err != nil {
		return nil, err
	}
	return decodeJSON(body)
}

// Stat lấy lượng truy cập không gian hôm nay
func (q *QzoneAdapter) Stat(ctx context.Context, acc *Account) (map[string]interface{}, error) {
	if err := waitLimiter(ctx, acc.AID); err != nil {
		return nil, err
	}

	uin := acc.Auth["uin"]
	gtk := acc.Auth["g_tk"]

	reqURL := fmt.Sprintf("%s?uin=%s&g_tk=%s&mask=7&page=1&fupdate=1&clear=1", qzoneVisitorURL, uin, gtk)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cookie", cookieHeader(acc.Cookies))

	body, err := doRequest(req)
	if err != nil {
		return nil, err
	}
	result, err := parseJsonp(string(body))
	if err != nil {
		return nil, err
	}

	data := dataField(result)
	return map[string]interface{}{
		"todaycount": data["todaycount"],
		"totalcount": data["totalcount"],
	}, nil
}

// DeletableID trích xuất t1_tid từ kết quả phát hành
func (q *QzoneAdapter) DeletableID(outcome Outcome) string {
	if outcome.Data == nil {
		return ""
	}
	id, _ := outcome.Data["t1_tid"].(string)
	return id
}
