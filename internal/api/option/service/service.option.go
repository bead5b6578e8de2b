package optionsvc

import (
	"context"
	"errors"
	"fmt"

	basesvc "github.com/xiaofeiTM233/FlowHub/internal/api/base/service"
	optionmodels "github.com/xiaofeiTM233/FlowHub/internal/api/option/models"
	"github.com/xiaofeiTM233/FlowHub/internal/common"
	"github.com/xiaofeiTM233/FlowHub/internal/global"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SingletonIDHex là _id cố định của document cấu hình
const SingletonIDHex = "000000000000000000000000"

// OptionService quản lý document cấu hình vận hành (singleton)
type OptionService struct {
	*basesvc.BaseServiceMongoImpl[optionmodels.Option]
}

// NewOptionService tạo mới OptionService
func NewOptionService() (*OptionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Options)
	if !exist {
		return nil, fmt.Errorf("failed to get options collection: %v", common.ErrNotFound)
	}

	return &OptionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[optionmodels.Option](collection),
	}, nil
}

// SingletonID trả về ObjectID cố định của document cấu hình
func SingletonID() primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(SingletonIDHex)
	return id
}

// GetOrInit lấy cấu hình hiện tại, chưa có thì tạo mới với giá trị mặc định
func (s *OptionService) GetOrInit(ctx context.Context) (optionmodels.Option, error) {
	option, err := s.FindOneById(ctx, SingletonID())
	if err == nil {
		return option, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return optionmodels.Option{}, err
	}

	defaults := optionmodels.DefaultOption()
	defaults.ID = SingletonID()
	return s.Upsert(ctx, bson.M{"_id": SingletonID()}, defaults)
}

// Save ghi lại toàn bộ cấu hình
func (s *OptionService) Save(ctx context.Context, option optionmodels.Option) (optionmodels.Option, error) {
	option.ID = SingletonID()
	return s.Upsert(ctx, bson.M{"_id": SingletonID()}, option)
}

// NextNumber cấp số thứ tự bài tiếp theo.
// Tăng last_number bằng $inc nguyên tử để hai lần duyệt đồng thời
// không bao giờ nhận trùng số.
func (s *OptionService) NextNumber(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(true)
	option, err := s.FindOneAndUpdate(ctx,
		bson.M{"_id": SingletonID()},
		bson.M{"$inc": bson.M{"last_number": 1}},
		opts,
	)
	if err != nil {
		return 0, err
	}
	return option.LastNumber, nil
}

// SetLastNumber đặt lại bộ đếm theo yêu cầu của moderator (action num)
func (s *OptionService) SetLastNumber(ctx context.Context, n int64) error {
	_, err := s.UpdateOne(ctx,
		bson.M{"_id": SingletonID()},
		bson.M{"$set": bson.M{"last_number": n}},
		nil,
	)
	return err
}
