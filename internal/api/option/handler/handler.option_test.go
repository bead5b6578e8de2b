package optionhdl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	optiondto "github.com/xiaofeiTM233/FlowHub/internal/api/option/dto"
	optionmodels "github.com/xiaofeiTM233/FlowHub/internal/api/option/models"
)

func ptr[T any](v T) *T { return &v }

func TestApplyOptionInput_PartialUpdate(t *testing.T) {
	option := optionmodels.DefaultOption()
	option.ApproveNum = 3
	option.PublishDirect = true

	input := optiondto.OptionInput{
		ApproveNum: ptr(5),
		TotalNum:   ptr(2),
	}
	applyOptionInput(&option, &input)

	assert.Equal(t, 5, option.ApproveNum)
	assert.Equal(t, 2, option.TotalNum)

	// Field không gửi lên giữ nguyên giá trị cũ
	assert.True(t, option.PublishDirect)
	assert.Equal(t, 1, option.RejectNum)
}

func TestApplyOptionInput_ZeroValuesApplied(t *testing.T) {
	option := optionmodels.DefaultOption()

	// Gửi giá trị zero tường minh phải được ghi nhận (tắt luật, tắt phát hành ngay)
	input := optiondto.OptionInput{
		ApproveNum:    ptr(0),
		PublishDirect: ptr(false),
	}
	applyOptionInput(&option, &input)

	assert.Equal(t, 0, option.ApproveNum)
	assert.False(t, option.PublishDirect)
}

func TestApplyOptionInput_AllFields(t *testing.T) {
	option := optionmodels.Option{}
	input := optiondto.OptionInput{
		Description:        ptr("校园墙"),
		DefaultPlatforms:   []string{"bili-main"},
		ReviewPushPlatform: ptr("onebot-main"),
		ReviewPushGroup:    ptr(int64(123456)),
		ReviewPushDirect:   ptr(true),
		PublishDirect:      ptr(true),
		ApproveNum:         ptr(2),
		RejectNum:          ptr(2),
		TotalNum:           ptr(1),
		LastNumber:         ptr(int64(100)),
		ResetAllOnAction:   ptr(true),
	}
	applyOptionInput(&option, &input)

	assert.Equal(t, "校园墙", option.Description)
	assert.Equal(t, []string{"bili-main"}, option.DefaultPlatforms)
	assert.Equal(t, "onebot-main", option.ReviewPushPlatform)
	assert.Equal(t, int64(123456), option.ReviewPushGroup)
	assert.True(t, option.ReviewPushDirect)
	assert.Equal(t, int64(100), option.LastNumber)
	assert.True(t, option.ResetAllOnAction)
}
