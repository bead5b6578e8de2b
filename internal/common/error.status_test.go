package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestNewError(t *testing.T) {
	err := NewError(ErrCodeReview, "未找到ID为 x 的帖子", StatusNotFound, map[string]interface{}{"cid": "x"})

	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "未找到ID为 x 的帖子", appErr.Error())
	assert.Equal(t, StatusNotFound, appErr.StatusCode)
	assert.Equal(t, ErrCodeReview.Code, appErr.Code.Code)
	assert.NotNil(t, appErr.Details)
}

func TestErrorIs(t *testing.T) {
	// Sentinel so sánh theo code + message, không theo pointer
	err := NewError(ErrCodeDatabaseQuery, "Không tìm thấy dữ liệu", StatusNotFound, nil)
	assert.True(t, errors.Is(err, ErrNotFound))

	other := NewError(ErrCodeDatabaseQuery, "Lỗi khác", StatusNotFound, nil)
	assert.False(t, errors.Is(other, ErrNotFound))

	wrapped := fmt.Errorf("tra cứu bài: %w", ErrNotFound)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestConvertMongoError(t *testing.T) {
	assert.NoError(t, ConvertMongoError(nil))

	// ErrNotFound giữ nguyên để tầng trên phân biệt với lỗi hạ tầng
	assert.True(t, errors.Is(ConvertMongoError(ErrNotFound), ErrNotFound))

	err := ConvertMongoError(mongo.CommandError{Code: 150, Message: "network"})
	assert.True(t, errors.Is(err, ErrMongoConnection))

	err = ConvertMongoError(mongo.CommandError{Code: 250, Message: "auth"})
	assert.True(t, errors.Is(err, ErrMongoAuth))

	// Lỗi lạ được bọc thành lỗi database chung
	err = ConvertMongoError(errors.New("gì đó"))
	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, StatusInternalServerError, appErr.StatusCode)
}
