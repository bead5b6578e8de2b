package postsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaofeiTM233/FlowHub/internal/platform"
)

func TestDeleteFanout_Success(t *testing.T) {
	bili := &fakeAdapter{kind: "fake-bili"}
	s := newTestService(testAccounts(), map[string]platform.Adapter{"fake-bili": bili})

	results := map[string]platform.Outcome{
		"bili-main": {
			Platform: "fake-bili",
			Status:   platform.StatusSuccess,
			Data:     map[string]interface{}{"native_id": "dyn-123"},
		},
	}

	deleteResults := s.DeleteFanout(context.Background(), results)

	require.Contains(t, deleteResults, "bili-main")
	assert.Equal(t, platform.StatusSuccess, deleteResults["bili-main"].Status)
	assert.Equal(t, []string{"dyn-123"}, bili.deleted, "ID xóa phải lấy từ kết quả phát hành")
}

func TestDeleteFanout_MissingDeletableID(t *testing.T) {
	bili := &fakeAdapter{kind: "fake-bili"}
	s := newTestService(testAccounts(), map[string]platform.Adapter{"fake-bili": bili})

	// Outcome không có native_id (ví dụ lần phát hành trước thất bại)
	results := map[string]platform.Outcome{
		"bili-main": {Platform: "fake-bili", Status: platform.StatusError, Message: "lỗi cũ"},
	}

	deleteResults := s.DeleteFanout(context.Background(), results)

	assert.Equal(t, platform.StatusError, deleteResults["bili-main"].Status)
	assert.Equal(t, "未能在发布结果中找到用于删除的ID", deleteResults["bili-main"].Message)
	assert.Empty(t, bili.deleted, "không có ID thì không gọi adapter")
}

func TestDeleteFanout_ErrorIsolated(t *testing.T) {
	bili := &fakeAdapter{kind: "fake-bili", deleteErr: errors.New("动态已删除")}
	qzone := &fakeAdapter{kind: "fake-qzone"}
	s := newTestService(testAccounts(), map[string]platform.Adapter{
		"fake-bili":  bili,
		"fake-qzone": qzone,
	})

	results := map[string]platform.Outcome{
		"bili-main": {
			Platform: "fake-bili",
			Status:   platform.StatusSuccess,
			Data:     map[string]interface{}{"native_id": "dyn-123"},
		},
		"qzone-main": {
			Platform: "fake-qzone",
			Status:   platform.StatusSuccess,
			Data:     map[string]interface{}{"native_id": "tid-456"},
		},
	}

	deleteResults := s.DeleteFanout(context.Background(), results)

	assert.Equal(t, platform.StatusError, deleteResults["bili-main"].Status)
	assert.Contains(t, deleteResults["bili-main"].Message, "动态已删除")
	assert.Equal(t, platform.StatusSuccess, deleteResults["qzone-main"].Status)
	assert.Equal(t, []string{"tid-456"}, qzone.deleted)
}

func TestDeleteFanout_UnknownAccountAndPlatform(t *testing.T) {
	accounts := map[string]*platform.Account{
		"weird": {AID: "weird", Platform: "myspace"},
	}
	s := newTestService(accounts, map[string]platform.Adapter{})

	results := map[string]platform.Outcome{
		"gone":  {Status: platform.StatusSuccess},
		"weird": {Status: platform.StatusSuccess},
	}

	deleteResults := s.DeleteFanout(context.Background(), results)

	assert.Equal(t, "账号不存在", deleteResults["gone"].Message)
	assert.Equal(t, "不支持的平台", deleteResults["weird"].Message)
}
