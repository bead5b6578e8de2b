package tagger

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

func TestConfigured(t *testing.T) {
	assert.False(t, New(&config.Configuration{}).Configured())
	assert.True(t, New(&config.Configuration{ReviewTagURL: "http://localhost:5000"}).Configured())
}

func TestTags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var content reviewmodels.DraftContent
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&content))
		assert.Equal(t, "求组队", content.Text)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 0,
			"data": map[string][]string{"分类": {"交友", "学习"}},
		})
	}))
	defer server.Close()

	c := &Client{url: server.URL, httpClient: &http.Client{Timeout: 5 * time.Second}}
	tags, err := c.Tags(context.Background(), reviewmodels.DraftContent{Text: "求组队"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"分类": {"交友", "学习"}}, tags)
}

func TestTags_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"code": 1, "message": "模型超载"})
	}))
	defer server.Close()

	c := &Client{url: server.URL, httpClient: &http.Client{Timeout: 5 * time.Second}}
	_, err := c.Tags(context.Background(), reviewmodels.DraftContent{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "模型超载")
}

func TestTags_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	c := &Client{url: server.URL, httpClient: &http.Client{Timeout: 5 * time.Second}}
	_, err := c.Tags(context.Background(), reviewmodels.DraftContent{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}
