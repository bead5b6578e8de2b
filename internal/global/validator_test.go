package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateReviewAction(t *testing.T) {
	InitValidator()

	type payload struct {
		Action string `validate:"required,review_action"`
	}

	valid := []string{
		"retrial", "approve", "reject", "approveforce", "rejectforce",
		"block", "comment", "raw", "sender", "num", "togglenick", "tag", "repush",
		"APPROVE", // không phân biệt hoa thường
	}
	for _, action := range valid {
		assert.NoError(t, Validate.Struct(payload{Action: action}), "action %q phải hợp lệ", action)
	}

	invalid := []string{"", "delete", "approve ", "ban"}
	for _, action := range invalid {
		assert.Error(t, Validate.Struct(payload{Action: action}), "action %q phải bị từ chối", action)
	}
}

func TestValidateObjectID(t *testing.T) {
	InitValidator()

	type payload struct {
		CID string `validate:"omitempty,object_id"`
	}

	assert.NoError(t, Validate.Struct(payload{CID: "507f1f77bcf86cd799439011"}))
	assert.NoError(t, Validate.Struct(payload{CID: ""}), "chuỗi rỗng là optional")
	assert.Error(t, Validate.Struct(payload{CID: "not-an-object-id"}))
	assert.Error(t, Validate.Struct(payload{CID: "507f1f77bcf86cd79943901"}), "thiếu một ký tự hex")
}

func TestValidateNoXSS(t *testing.T) {
	InitValidator()

	type payload struct {
		Text string `validate:"omitempty,no_xss"`
	}

	assert.NoError(t, Validate.Struct(payload{Text: "nội dung bình thường 带中文"}))
	assert.Error(t, Validate.Struct(payload{Text: `<script>alert(1)</script>`}))
	assert.Error(t, Validate.Struct(payload{Text: `<SCRIPT>alert(1)</SCRIPT>`}), "phải bắt cả chữ hoa")
	assert.Error(t, Validate.Struct(payload{Text: `<img src=x onerror=alert(1)>`}))
	assert.Error(t, Validate.Struct(payload{Text: `javascript:void(0)`}))
}
