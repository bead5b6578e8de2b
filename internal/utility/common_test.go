package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoProtect(t *testing.T) {
	// Panic trong hàm được bọc không lan ra ngoài
	assert.NotPanics(t, func() {
		GoProtect(func() {
			panic("nổ")
		})
	})

	// Hàm bình thường vẫn chạy tới nơi
	ran := false
	GoProtect(func() { ran = true })
	assert.True(t, ran)
}
