package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestString2ObjectID(t *testing.T) {
	hex := "507f1f77bcf86cd799439011"
	id := String2ObjectID(hex)
	assert.Equal(t, hex, id.Hex())

	assert.Equal(t, primitive.NilObjectID, String2ObjectID("xxx"))
	assert.Equal(t, primitive.NilObjectID, String2ObjectID(""))
}

func TestP2Int64(t *testing.T) {
	assert.Equal(t, int64(1700000000000), P2Int64("1700000000000"))
	assert.Equal(t, int64(-5), P2Int64("-5"))
	assert.Equal(t, int64(0), P2Int64("abc"), "chuỗi không hợp lệ trả về 0")
	assert.Equal(t, int64(0), P2Int64(""))
	assert.Equal(t, int64(0), P2Int64("1.5"))
}

func TestUnixMilli(t *testing.T) {
	moment := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	assert.Equal(t, int64(1700000000000), UnixMilli(moment))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]string{"a", "b"}, "c"))
	assert.False(t, Contains([]int{}, 1))
}
