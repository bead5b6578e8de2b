package accountsvc

import (
	"context"
	"fmt"

	accountmodels "github.com/xiaofeiTM233/FlowHub/internal/api/account/models"
	basesvc "github.com/xiaofeiTM233/FlowHub/internal/api/base/service"
	"github.com/xiaofeiTM233/FlowHub/internal/common"
	"github.com/xiaofeiTM233/FlowHub/internal/global"
	"github.com/xiaofeiTM233/FlowHub/internal/logger"
	"github.com/xiaofeiTM233/FlowHub/internal/platform"
	"go.mongodb.org/mongo-driver/bson"
)

// AccountService quản lý tài khoản nền tảng
type AccountService struct {
	*basesvc.BaseServiceMongoImpl[accountmodels.Account]
}

// NewAccountService tạo mới AccountService
func NewAccountService() (*AccountService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Accounts)
	if !exist {
		return nil, fmt.Errorf("failed to get accounts collection: %v", common.ErrNotFound)
	}

	return &AccountService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[accountmodels.Account](collection),
	}, nil
}

// FindByAID tìm tài khoản theo aid
func (s *AccountService) FindByAID(ctx context.Context, aid string) (accountmodels.Account, error) {
	return s.FindOne(ctx, bson.M{"aid": aid}, nil)
}

// Resolve trả về view credentials của tài khoản cho adapter.
// Orchestrator dùng hàm này để không phụ thuộc trực tiếp vào model.
func (s *AccountService) Resolve(ctx context.Context, aid string) (*platform.Account, error) {
	account, err := s.FindByAID(ctx, aid)
	if err != nil {
		return nil, err
	}
	return ToPlatformAccount(account), nil
}

// ToPlatformAccount chuyển model Account sang view credentials cho adapter
func ToPlatformAccount(account accountmodels.Account) *platform.Account {
	return &platform.Account{
		AID:      account.AID,
		Platform: account.Platform,
		UID:      account.UID,
		Auth:     account.Auth,
		Cookies:  account.Cookies,
	}
}

// RefreshStats gọi adapter lấy số liệu mới và lưu lại vào document tài khoản.
// aids rỗng thì làm mới tất cả tài khoản.
func (s *AccountService) RefreshStats(ctx context.Context, aids []string) (map[string]interface{}, error) {
	filter := bson.M{}
	if len(aids) > 0 {
		filter = bson.M{"aid": bson.M{"$in": aids}}
	}

	accounts, err := s.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]interface{}, len(accounts))
	for _, account := range accounts {
		adapter, ok := platform.Get(account.Platform)
		if !ok {
			stats[account.AID] = map[string]interface{}{"error": "不支持的平台"}
			continue
		}

		stat, err := adapter.Stat(ctx, ToPlatformAccount(account))
		if err != nil {
			// Lỗi một tài khoản không chặn các tài khoản còn lại
			logger.WithPlatform(account.Platform, account.AID).WithError(err).Warn("Làm mới thống kê tài khoản thất bại")
			stats[account.AID] = map[string]interface{}{"error": err.Error()}
			continue
		}

		if _, err := s.UpdateOne(ctx, bson.M{"aid": account.AID}, bson.M{"$set": bson.M{"stats": stat}}, nil); err != nil {
			return nil, err
		}
		stats[account.AID] = stat
	}

	return stats, nil
}
