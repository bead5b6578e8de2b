package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	r := NewRegistry[string]()

	isNew, err := r.Register("a", "1")
	require.NoError(t, err)
	assert.True(t, isNew)

	// Đăng ký trùng tên là ghi đè
	isNew, err = r.Register("a", "2")
	require.NoError(t, err)
	assert.False(t, isNew)

	value, exists := r.Get("a")
	assert.True(t, exists)
	assert.Equal(t, "2", value)

	_, err = r.Register("", "x")
	assert.Error(t, err, "name rỗng phải bị từ chối")
}

func TestGetOrCreate(t *testing.T) {
	r := NewRegistry[int]()
	calls := 0

	v, err := r.GetOrCreate("k", func() (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	// Lần hai trả về item sẵn có, creator không được gọi lại
	v, err = r.GetOrCreate("k", func() (int, error) {
		calls++
		return 99, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	_, err = r.GetOrCreate("bad", func() (int, error) {
		return 0, errors.New("creator hỏng")
	})
	assert.Error(t, err)
	_, exists := r.Get("bad")
	assert.False(t, exists, "creator lỗi thì không được lưu item")
}

func TestGetOrCreate_Concurrent(t *testing.T) {
	r := NewRegistry[*sync.Mutex]()
	var wg sync.WaitGroup
	results := make([]*sync.Mutex, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mu, err := r.GetOrCreate("draft:abc", func() (*sync.Mutex, error) {
				return &sync.Mutex{}, nil
			})
			assert.NoError(t, err)
			results[i] = mu
		}(i)
	}
	wg.Wait()

	// Mọi goroutine phải nhận cùng một mutex instance
	for i := 1; i < 50; i++ {
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, 1, r.Len())
}

func TestUpdate(t *testing.T) {
	r := NewRegistry[int]()
	r.Register("n", 1)

	err := r.Update("n", func(v int) (int, error) { return v + 1, nil })
	require.NoError(t, err)
	v, _ := r.Get("n")
	assert.Equal(t, 2, v)

	err = r.Update("missing", func(v int) (int, error) { return v, nil })
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	r := NewRegistry[string]()
	r.Register("a", "1")

	cleaned := ""
	deleted, err := r.Clear("a", func(v string) error {
		cleaned = v
		return nil
	})
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, "1", cleaned, "cleanup phải được gọi trước khi xóa")

	deleted, err = r.Clear("a", nil)
	require.NoError(t, err)
	assert.False(t, deleted, "xóa item không tồn tại là no-op")
}

func TestClearAll(t *testing.T) {
	r := NewRegistry[string]()
	r.Register("a", "1")
	r.Register("b", "2")

	count, err := r.ClearAll(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Names())
}
