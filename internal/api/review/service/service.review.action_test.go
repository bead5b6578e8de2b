// Package reviewsvc - Test các hàm thuần của quy trình duyệt bài:
// dọn phiếu, đếm lại stat và xét ngưỡng chuyển trạng thái.
package reviewsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	optionmodels "github.com/xiaofeiTM233/FlowHub/internal/api/option/models"
	"github.com/xiaofeiTM233/FlowHub/internal/api/review/models"
)

func votes(mids ...string) []models.Vote {
	vs := make([]models.Vote, 0, len(mids))
	for _, mid := range mids {
		vs = append(vs, models.Vote{MID: mid, Reason: DefaultReason})
	}
	return vs
}

func mids(vs []models.Vote) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.MID)
	}
	return out
}

func TestRemoveVotesBy(t *testing.T) {
	vs := votes("a", "b", "a", "c")

	kept := removeVotesBy(vs, "a")
	assert.Equal(t, []string{"b", "c"}, mids(kept), "phải xóa mọi phiếu của moderator a")

	kept = removeVotesBy(vs, "x")
	assert.Len(t, kept, 4, "moderator chưa bỏ phiếu thì danh sách giữ nguyên")

	kept = removeVotesBy([]models.Vote{}, "a")
	assert.NotNil(t, kept)
	assert.Len(t, kept, 0)
}

func TestApplyVoteHygiene_ActorOnly(t *testing.T) {
	review := models.ReviewState{
		Approve: votes("a", "b"),
		Reject:  votes("a", "c"),
	}

	// resetAll tắt: chỉ xóa phiếu của người thao tác, ở cả hai phía
	applyVoteHygiene(&review, ActionApprove, "a", false)
	assert.Equal(t, []string{"b"}, mids(review.Approve))
	assert.Equal(t, []string{"c"}, mids(review.Reject))
}

func TestApplyVoteHygiene_ResetAll(t *testing.T) {
	review := models.ReviewState{
		Approve: votes("a", "b"),
		Reject:  votes("c"),
	}

	applyVoteHygiene(&review, ActionReject, "a", true)
	assert.Empty(t, review.Approve, "resetAll bật thì xóa toàn bộ phiếu thuận")
	assert.Empty(t, review.Reject, "resetAll bật thì xóa toàn bộ phiếu chống")
}

func TestApplyVoteHygiene_RetrialIgnoresResetAll(t *testing.T) {
	review := models.ReviewState{
		Approve: votes("a", "b"),
		Reject:  votes("c"),
	}

	// Retrial luôn chỉ xóa phiếu của người thao tác, kể cả khi resetAll bật
	applyVoteHygiene(&review, ActionRetrial, "a", true)
	assert.Equal(t, []string{"b"}, mids(review.Approve))
	assert.Equal(t, []string{"c"}, mids(review.Reject))
}

func TestApplyVoteHygiene_RepeatVoteKeepsOnePerModerator(t *testing.T) {
	review := models.ReviewState{
		Approve: votes("a"),
		Reject:  []models.Vote{},
	}

	// Moderator đổi phiếu từ thuận sang chống: phiếu cũ bị xóa trước khi ghi phiếu mới
	applyVoteHygiene(&review, ActionReject, "a", false)
	review.Reject = append(review.Reject, models.Vote{MID: "a", Reason: "不合适"})
	recountStat(&review)

	assert.Empty(t, review.Approve)
	assert.Equal(t, []string{"a"}, mids(review.Reject))
	assert.Equal(t, models.ReviewStat{Approve: 0, Reject: 1}, review.Stat)
}

func TestRecountStat(t *testing.T) {
	review := models.ReviewState{
		Approve: votes("a", "b", "c"),
		Reject:  votes("d"),
		// Stat cũ sai lệch, phải được tính lại từ độ dài mảng
		Stat: models.ReviewStat{Approve: 99, Reject: 99},
	}
	recountStat(&review)
	assert.Equal(t, models.ReviewStat{Approve: 3, Reject: 1}, review.Stat)
}

func TestEvaluateThresholds(t *testing.T) {
	tests := []struct {
		name     string
		approve  int
		reject   int
		option   optionmodels.Option
		expected string
	}{
		{
			name:     "đạt ngưỡng phiếu thuận",
			approve:  2, reject: 0,
			option:   optionmodels.Option{ApproveNum: 2, RejectNum: 2},
			expected: models.DraftTypeApproved,
		},
		{
			name:     "đạt ngưỡng phiếu chống",
			approve:  0, reject: 3,
			option:   optionmodels.Option{ApproveNum: 2, RejectNum: 3},
			expected: models.DraftTypeRejected,
		},
		{
			name:     "chưa đạt ngưỡng nào",
			approve:  1, reject: 1,
			option:   optionmodels.Option{ApproveNum: 2, RejectNum: 2},
			expected: models.DraftTypePending,
		},
		{
			name:     "cả hai ngưỡng cùng đạt thì duyệt thắng",
			approve:  2, reject: 2,
			option:   optionmodels.Option{ApproveNum: 2, RejectNum: 2},
			expected: models.DraftTypeApproved,
		},
		{
			name:     "ngưỡng 0 là tắt luật",
			approve:  5, reject: 5,
			option:   optionmodels.Option{ApproveNum: 0, RejectNum: 0, TotalNum: 0},
			expected: models.DraftTypePending,
		},
		{
			name:     "chênh lệch thuận đạt ngưỡng tổng",
			approve:  3, reject: 1,
			option:   optionmodels.Option{TotalNum: 2},
			expected: models.DraftTypeApproved,
		},
		{
			name:     "chênh lệch chống đạt ngưỡng tổng",
			approve:  1, reject: 3,
			option:   optionmodels.Option{TotalNum: 2},
			expected: models.DraftTypeRejected,
		},
		{
			name:     "chênh lệch chưa đủ ngưỡng tổng",
			approve:  2, reject: 1,
			option:   optionmodels.Option{TotalNum: 2},
			expected: models.DraftTypePending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := models.Draft{
				Type: models.DraftTypePending,
				Review: models.ReviewState{
					Stat: models.ReviewStat{Approve: tt.approve, Reject: tt.reject},
				},
			}
			evaluateThresholds(&draft, &tt.option)
			assert.Equal(t, tt.expected, draft.Type)
		})
	}
}

func TestEvaluateThresholds_DefaultOption(t *testing.T) {
	option := optionmodels.DefaultOption()
	draft := models.Draft{
		Type: models.DraftTypePending,
		Review: models.ReviewState{
			Stat: models.ReviewStat{Approve: 1},
		},
	}

	// Mặc định approve_num=1: một phiếu thuận là đủ duyệt
	evaluateThresholds(&draft, &option)
	assert.Equal(t, models.DraftTypeApproved, draft.Type)
}

func TestAppendComment(t *testing.T) {
	review := models.ReviewState{}
	appendComment(&review, "mod-1", "重审：无理由")

	require.Len(t, review.Comments, 1)
	assert.Equal(t, "mod-1", review.Comments[0].MID)
	assert.Equal(t, "重审：无理由", review.Comments[0].Reason)
	assert.Greater(t, review.Comments[0].Timestamp, int64(0), "ghi chú phải kèm timestamp")
}
