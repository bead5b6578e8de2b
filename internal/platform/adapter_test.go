package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAdapter cho test Plus, ghi lại thứ tự assets nhận được khi publish
type stubAdapter struct {
	uploadErr  error
	publishErr error
	gotAssets  []map[string]interface{}
}

func (s *stubAdapter) Kind() string { return "stub" }

func (s *stubAdapter) Upload(ctx context.Context, acc *Account, imageBase64 string) (map[string]interface{}, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	return map[string]interface{}{"image": imageBase64}, nil
}

func (s *stubAdapter) Publish(ctx context.Context, acc *Account, text string, assets []map[string]interface{}) (map[string]interface{}, error) {
	if s.publishErr != nil {
		return nil, s.publishErr
	}
	s.gotAssets = assets
	return map[string]interface{}{"ok": true}, nil
}

func (s *stubAdapter) Delete(ctx context.Context, acc *Account, nativeID string) (map[string]interface{}, error) {
	return nil, nil
}

func (s *stubAdapter) Stat(ctx context.Context, acc *Account) (map[string]interface{}, error) {
	return nil, nil
}

func (s *stubAdapter) DeletableID(outcome Outcome) string { return "" }

func TestPlus_Success(t *testing.T) {
	a := &stubAdapter{}
	outcome := Plus(context.Background(), a, &Account{}, "text", []string{"img1", "img2"})

	assert.Equal(t, StatusSuccess, outcome.Status)
	assert.Equal(t, "stub", outcome.Platform)
	require.NotNil(t, outcome.Data)

	// Upload tuần tự, publish nhận assets đúng thứ tự ảnh
	require.Len(t, a.gotAssets, 2)
	assert.Equal(t, "img1", a.gotAssets[0]["image"])
	assert.Equal(t, "img2", a.gotAssets[1]["image"])
}

func TestPlus_UploadError(t *testing.T) {
	a := &stubAdapter{uploadErr: errors.New("upload hỏng")}
	outcome := Plus(context.Background(), a, &Account{}, "text", []string{"img"})

	assert.Equal(t, StatusError, outcome.Status)
	assert.Equal(t, "stub", outcome.Platform)
	assert.Contains(t, outcome.Message, "upload hỏng")
	assert.Nil(t, a.gotAssets, "upload lỗi thì không được publish")
}

func TestPlus_PublishError(t *testing.T) {
	a := &stubAdapter{publishErr: errors.New("publish hỏng")}
	outcome := Plus(context.Background(), a, &Account{}, "text", nil)

	assert.Equal(t, StatusError, outcome.Status)
	assert.Contains(t, outcome.Message, "publish hỏng")
}

func TestRegisteredAdapters(t *testing.T) {
	// bili và qzone tự đăng ký qua init
	for _, kind := range []string{"bili", "qzone"} {
		a, ok := Get(kind)
		require.True(t, ok, "adapter %s phải được đăng ký sẵn", kind)
		assert.Equal(t, kind, a.Kind())
	}
	_, ok := Get("myspace")
	assert.False(t, ok)

	kinds := Kinds()
	assert.Contains(t, kinds, "bili")
	assert.Contains(t, kinds, "qzone")
}

func TestCookieHeader(t *testing.T) {
	header := cookieHeader(map[string]string{
		"SESSDATA": "xyz",
		"bili_jct": "abc",
	})
	// Key được sort để header ổn định giữa các lần gọi
	assert.Equal(t, "SESSDATA=xyz; bili_jct=abc", header)

	assert.Equal(t, "", cookieHeader(nil))
}

func TestParseJsonp(t *testing.T) {
	result, err := parseJsonp(`_Callback({"code":0,"message":"ok"});`)
	require.NoError(t, err)
	assert.Equal(t, float64(0), result["code"])
	assert.Equal(t, "ok", result["message"])

	// Nested ngoặc trong payload vẫn bóc đúng nhờ LastIndex
	result, err = parseJsonp(`frameElement.callback({"data":{"t1_tid":"123"}})`)
	require.NoError(t, err)
	require.Contains(t, result, "data")

	_, err = parseJsonp(`không phải jsonp`)
	assert.Error(t, err)
}

func TestCheckBiliCode(t *testing.T) {
	assert.NoError(t, checkBiliCode(map[string]interface{}{"code": float64(0)}))

	err := checkBiliCode(map[string]interface{}{"code": float64(-101), "message": "账号未登录"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "账号未登录")

	// Thiếu trường code cũng là lỗi
	assert.Error(t, checkBiliCode(map[string]interface{}{}))
}

func TestDeletableID(t *testing.T) {
	bili, _ := Get("bili")
	qzone, _ := Get("qzone")

	assert.Equal(t, "dyn-1", bili.DeletableID(Outcome{
		Data: map[string]interface{}{"dyn_id_str": "dyn-1"},
	}))
	assert.Equal(t, "", bili.DeletableID(Outcome{}))

	assert.Equal(t, "tid-1", qzone.DeletableID(Outcome{
		Data: map[string]interface{}{"t1_tid": "tid-1"},
	}))
	assert.Equal(t, "", qzone.DeletableID(Outcome{Data: map[string]interface{}{}}))
}

func TestDataField(t *testing.T) {
	data := dataField(map[string]interface{}{
		"data": map[string]interface{}{"pic_url": "http://x"},
	})
	assert.Equal(t, "http://x", data["pic_url"])

	// Trường data thiếu hoặc sai kiểu trả về map rỗng, không panic
	assert.NotNil(t, dataField(map[string]interface{}{}))
	assert.NotNil(t, dataField(map[string]interface{}{"data": "chuỗi"}))
}
