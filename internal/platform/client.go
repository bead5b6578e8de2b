package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/xiaofeiTM233/FlowHub/internal/global"
	"github.com/xiaofeiTM233/FlowHub/internal/registry"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"

// httpClient dùng chung cho mọi adapter, timeout tính bằng giây để một nền
// tảng chậm không treo cả request
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// limiters chứa rate limiter theo từng tài khoản, tránh gọi API nền tảng quá dày
var limiters = registry.NewRegistry[*rate.Limiter]()

// waitLimiter chờ đến lượt gọi API của tài khoản aid
func waitLimiter(ctx context.Context, aid string) error {
	limit := 2.0
	if global.MongoDB_ServerConfig != nil && global.MongoDB_ServerConfig.PlatformRateLimit > 0 {
		limit = global.MongoDB_ServerConfig.PlatformRateLimit
	}
	limiter, err := limiters.GetOrCreate(aid, func() (*rate.Limiter, error) {
		return rate.NewLimiter(rate.Limit(limit), 1), nil
	})
	if err != nil {
		return err
	}
	return limiter.Wait(ctx)
}

// cookieHeader ghép map cookies thành header Cookie.
// Sort key để header ổn định giữa các lần gọi.
func cookieHeader(cookies map[string]string) string {
	keys := make([]string, 0, len(cookies))
	for k := range cookies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, cookies[k]))
	}
	return strings.Join(pairs, "; ")
}

// doRequest gửi request và đọc toàn bộ body trả về
func doRequest(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// decodeJSON parse body JSON vào map
func decodeJSON(body []byte) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return result, nil
}

// dataField lấy trường data dạng object từ response đã parse
func dataField(result map[string]interface{}) map[string]interface{} {
	if data, ok := result["data"].(map[string]interface{}); ok {
		return data
	}
	return map[string]interface{}{}
}
