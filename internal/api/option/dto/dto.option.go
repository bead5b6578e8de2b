package dto

// OptionInput là dữ liệu đầu vào khi cập nhật cấu hình vận hành.
// Dùng con trỏ để phân biệt field không gửi lên với field gửi giá trị zero.
type OptionInput struct {
	Description        *string  `json:"description,omitempty" bson:"description,omitempty"`
	DefaultPlatforms   []string `json:"defaultPlatform,omitempty" bson:"default_platform,omitempty"`
	ReviewPushPlatform *string  `json:"reviewPushPlatform,omitempty" bson:"review_push_platform,omitempty"`
	ReviewPushGroup    *int64   `json:"reviewPushGroup,omitempty" bson:"review_push_group,omitempty"`
	ReviewPushDirect   *bool    `json:"reviewPushDirect,omitempty" bson:"review_push_direct,omitempty"`
	PublishDirect      *bool    `json:"publishDirect,omitempty" bson:"publish_direct,omitempty"`
	ApproveNum         *int     `json:"approveNum,omitempty" bson:"approve_num,omitempty" validate:"omitempty,min=0"`
	RejectNum          *int     `json:"rejectNum,omitempty" bson:"reject_num,omitempty" validate:"omitempty,min=0"`
	TotalNum           *int     `json:"totalNum,omitempty" bson:"total_num,omitempty" validate:"omitempty,min=0"`
	LastNumber         *int64   `json:"lastNumber,omitempty" bson:"last_number,omitempty" validate:"omitempty,min=0"`
	ResetAllOnAction   *bool    `json:"resetAllOnAction,omitempty" bson:"reset_all_on_action,omitempty"`
}
