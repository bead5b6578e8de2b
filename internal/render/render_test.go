package render

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaofeiTM233/FlowHub/config"
	reviewmodels "github.com/xiaofeiTM233/FlowHub/internal/api/review/models"
)

func TestBuildData(t *testing.T) {
	content := reviewmodels.DraftContent{
		UserID:   123,
		Nickname: "张三",
		Title:    "标题",
		Text:     "正文",
		Images:   []string{"img-1"},
	}
	data := buildData(content, 1700000000000)

	assert.Equal(t, int64(123), data["userid"])
	assert.Equal(t, "张三", data["nickname"])
	assert.Equal(t, []string{"img-1"}, data["images"])

	// 1700000000000 ms = 2023-11-14 22:13:20 UTC, hiển thị theo UTC+8
	assert.Equal(t, "2023-11-15 06:13:20", data["time"])
}

func TestConfigured(t *testing.T) {
	assert.False(t, New(&config.Configuration{}).Configured())
	assert.True(t, New(&config.Configuration{RenderURL: "http://localhost:3000"}).Configured())
}

func TestRender(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "base64", payload["newType"])

		if data, ok := payload["data"].(map[string]interface{}); assert.True(t, ok) {
			assert.Equal(t, "正文", data["text"])
		}

		json.NewEncoder(w).Encode(map[string]string{"base64": "aW1hZ2U="})
	}))
	defer server.Close()

	c := &Client{url: server.URL, httpClient: &http.Client{Timeout: 5 * time.Second}}
	out, err := c.Render(context.Background(), reviewmodels.DraftContent{Text: "正文"}, 1700000000000, OutputBase64)
	require.NoError(t, err)
	assert.Equal(t, "aW1hZ2U=", out)
}

func TestRender_Unconfigured(t *testing.T) {
	c := &Client{}
	_, err := c.Render(context.Background(), reviewmodels.DraftContent{}, 0, OutputBase64)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "未设置渲染函数")
}

func TestRender_MissingField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Phản hồi thiếu field theo newType yêu cầu
		json.NewEncoder(w).Encode(map[string]string{"html": "<p></p>"})
	}))
	defer server.Close()

	c := &Client{url: server.URL, httpClient: &http.Client{Timeout: 5 * time.Second}}
	_, err := c.Render(context.Background(), reviewmodels.DraftContent{}, 0, OutputBase64)
	assert.Error(t, err)
}

func TestRender_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "render crashed", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := &Client{url: server.URL, httpClient: &http.Client{Timeout: 5 * time.Second}}
	_, err := c.Render(context.Background(), reviewmodels.DraftContent{}, 0, OutputHTML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}
