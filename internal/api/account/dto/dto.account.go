package dto

// AccountCreateInput là dữ liệu đầu vào khi đăng ký tài khoản nền tảng
type AccountCreateInput struct {
	AID      string            `json:"aid" validate:"required,no_xss"`
	Platform string            `json:"platform" validate:"required,oneof=bili qzone"`
	UID      string            `json:"uid" validate:"required"`
	Auth     map[string]string `json:"auth,omitempty"`
	Cookies  map[string]string `json:"cookies" validate:"required"`
}

// AccountUpdateInput là dữ liệu đầu vào khi cập nhật tài khoản
type AccountUpdateInput struct {
	UID     string            `json:"uid,omitempty" bson:"uid,omitempty"`
	Auth    map[string]string `json:"auth,omitempty" bson:"auth,omitempty"`
	Cookies map[string]string `json:"cookies,omitempty" bson:"cookies,omitempty"`
}
