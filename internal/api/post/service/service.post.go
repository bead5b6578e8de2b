package postsvc

import (
	"context"
	"fmt"
	"sync"

	accountsvc "github.com/xiaofeiTM233/FlowHub/internal/api/account/service"
	basesvc "github.com/xiaofeiTM233/FlowHub/internal/api/base/service"
	postmodels "github.com/xiaofeiTM233/FlowHub/internal/api/post/models"
	"github.com/xiaofeiTM233/FlowHub/internal/common"
	"github.com/xiaofeiTM233/FlowHub/internal/global"
	"github.com/xiaofeiTM233/FlowHub/internal/platform"
	"github.com/xiaofeiTM233/FlowHub/internal/registry"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountResolver tra cứu credentials tài khoản theo aid.
// Interface để test orchestrator với resolver giả không cần MongoDB.
type AccountResolver interface {
	Resolve(ctx context.Context, aid string) (*platform.Account, error)
}

// postLocks chứa mutex theo từng bài, serialize các thao tác đọc-sửa-ghi
// trên cùng một bài (hai lần publish đồng thời không được xen kẽ results)
var postLocks = registry.NewRegistry[*sync.Mutex]()

// lockPost trả về mutex của một bài
func lockPost(id primitive.ObjectID) *sync.Mutex {
	mu, _ := postLocks.GetOrCreate("post:"+id.Hex(), func() (*sync.Mutex, error) {
		return &sync.Mutex{}, nil
	})
	return mu
}

// PostService quản lý bài đã duyệt: phát hành fan-out và xóa trên các nền tảng
type PostService struct {
	*basesvc.BaseServiceMongoImpl[postmodels.Post]
	resolver   AccountResolver
	adapterFor func(kind string) (platform.Adapter, bool)
}

// NewPostService tạo mới PostService với account resolver mặc định
func NewPostService() (*PostService, error) {
	accountService, err := accountsvc.NewAccountService()
	if err != nil {
		return nil, err
	}
	return NewPostServiceWith(accountService)
}

// NewPostServiceWith tạo PostService với resolver được inject (dùng cho test)
func NewPostServiceWith(resolver AccountResolver) (*PostService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Posts)
	if !exist {
		return nil, fmt.Errorf("failed to get posts collection: %v", common.ErrNotFound)
	}

	return &PostService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[postmodels.Post](collection),
		resolver:             resolver,
		adapterFor:           platform.Get,
	}, nil
}

// SetAdapterLookup thay hàm tra cứu adapter (dùng cho test với adapter giả)
func (s *PostService) SetAdapterLookup(lookup func(kind string) (platform.Adapter, bool)) {
	s.adapterFor = lookup
}
