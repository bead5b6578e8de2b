package basehdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCountResult(t *testing.T) {
	// Không truyền limit thì chỉ trả về tổng số
	result := newCountResult(42, 0)
	assert.Equal(t, int64(42), result.TotalCount)
	assert.Equal(t, int64(0), result.Limit)
	assert.Equal(t, int64(0), result.TotalPage)

	// Chia hết: 40 mục, 10 mỗi trang
	result = newCountResult(40, 10)
	assert.Equal(t, int64(40), result.TotalCount)
	assert.Equal(t, int64(10), result.Limit)
	assert.Equal(t, int64(4), result.TotalPage)

	// Không chia hết thì làm tròn lên
	result = newCountResult(42, 10)
	assert.Equal(t, int64(5), result.TotalPage)

	// Không có document nào
	result = newCountResult(0, 10)
	assert.Equal(t, int64(0), result.TotalPage)
}
