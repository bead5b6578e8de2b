package reviewsvc

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	accountsvc "github.com/xiaofeiTM233/FlowHub/internal/api/account/service"
	basesvc "github.com/xiaofeiTM233/FlowHub/internal/api/base/service"
	optionmodels "github.com/xiaofeiTM233/FlowHub/internal/api/option/models"
	optionsvc "github.com/xiaofeiTM233/FlowHub/internal/api/option/service"
	postmodels "github.com/xiaofeiTM233/FlowHub/internal/api/post/models"
	postsvc "github.com/xiaofeiTM233/FlowHub/internal/api/post/service"
	"github.com/xiaofeiTM233/FlowHub/internal/api/review/models"
	"github.com/xiaofeiTM233/FlowHub/internal/common"
	"github.com/xiaofeiTM233/FlowHub/internal/global"
	"github.com/xiaofeiTM233/FlowHub/internal/notifier"
	"github.com/xiaofeiTM233/FlowHub/internal/platform"
	"github.com/xiaofeiTM233/FlowHub/internal/registry"
	"github.com/xiaofeiTM233/FlowHub/internal/render"
	"github.com/xiaofeiTM233/FlowHub/internal/tagger"
)

// PostPromoter tạo và phát hành bài Post khi bài chờ duyệt được thông qua.
// Interface để test pipeline duyệt với promoter giả không cần MongoDB.
type PostPromoter interface {
	InsertOne(ctx context.Context, post postmodels.Post) (postmodels.Post, error)
	Publish(ctx context.Context, post postmodels.Post, markPublished bool) (map[string]platform.Outcome, error)
}

// ReviewNotifier đẩy bài chờ duyệt vào kênh duyệt (OneBot, email)
type ReviewNotifier interface {
	PushReview(ctx context.Context, account *platform.Account, draft *models.Draft, image string, option *optionmodels.Option) (map[string]interface{}, error)
}

// ContentTagger gắn tag AI cho nội dung bài
type ContentTagger interface {
	Configured() bool
	Tags(ctx context.Context, content models.DraftContent) (map[string][]string, error)
}

// AccountResolver tra cứu tài khoản nền tảng theo aid
type AccountResolver interface {
	Resolve(ctx context.Context, aid string) (*platform.Account, error)
}

// Renderer dựng ảnh/HTML cho bài từ dịch vụ render từ xa
type Renderer interface {
	Configured() bool
	Render(ctx context.Context, content models.DraftContent, timestamp int64, newType string) (string, error)
}

// BanService xử lý side effect chặn người gửi khi action block.
// Mặc định là NoopBanService, triển khai thật cắm qua NewDraftServiceWith.
type BanService interface {
	Block(ctx context.Context, userID int64, reason string) error
}

// OptionStore cung cấp cấu hình vận hành và bộ đếm số thứ tự bài
type OptionStore interface {
	GetOrInit(ctx context.Context) (optionmodels.Option, error)
	NextNumber(ctx context.Context) (int64, error)
	SetLastNumber(ctx context.Context, n int64) error
}

// NoopBanService là BanService không làm gì
type NoopBanService struct{}

// Block không làm gì, luôn thành công
func (NoopBanService) Block(ctx context.Context, userID int64, reason string) error {
	return nil
}

// draftLocks chứa mutex theo từng bài chờ duyệt, serialize các thao tác duyệt
// trên cùng một bài (hai phiếu đồng thời không được đếm chồng lên nhau)
var draftLocks = registry.NewRegistry[*sync.Mutex]()

// lockDraft trả về mutex của một bài chờ duyệt
func lockDraft(id primitive.ObjectID) *sync.Mutex {
	mu, _ := draftLocks.GetOrCreate("draft:"+id.Hex(), func() (*sync.Mutex, error) {
		return &sync.Mutex{}, nil
	})
	return mu
}

// DraftService quản lý bài chờ duyệt: vòng đời duyệt, bỏ phiếu, thăng cấp thành Post.
// Store và các collaborator đều là interface để test được pipeline không cần MongoDB.
type DraftService struct {
	basesvc.BaseServiceMongo[models.Draft]
	options  OptionStore
	promoter PostPromoter
	notifier ReviewNotifier
	tagger   ContentTagger
	accounts AccountResolver
	renderer Renderer
	ban      BanService
}

// NewDraftService tạo mới DraftService với các collaborator mặc định
func NewDraftService() (*DraftService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ReviewDrafts)
	if !exist {
		return nil, fmt.Errorf("failed to get review drafts collection: %v", common.ErrNotFound)
	}
	optionService, err := optionsvc.NewOptionService()
	if err != nil {
		return nil, err
	}
	postService, err := postsvc.NewPostService()
	if err != nil {
		return nil, err
	}
	accountService, err := accountsvc.NewAccountService()
	if err != nil {
		return nil, err
	}
	cfg := global.MongoDB_ServerConfig
	return NewDraftServiceWith(
		basesvc.NewBaseServiceMongo[models.Draft](collection),
		optionService,
		postService,
		notifier.New(cfg),
		tagger.New(cfg),
		accountService,
		render.New(cfg),
		NoopBanService{},
	), nil
}

// NewDraftServiceWith tạo DraftService với store và các collaborator được inject (dùng cho test)
func NewDraftServiceWith(store basesvc.BaseServiceMongo[models.Draft], options OptionStore, promoter PostPromoter, reviewNotifier ReviewNotifier, contentTagger ContentTagger, accounts AccountResolver, renderer Renderer, ban BanService) *DraftService {
	return &DraftService{
		BaseServiceMongo: store,
		options:          options,
		promoter:         promoter,
		notifier:         reviewNotifier,
		tagger:           contentTagger,
		accounts:         accounts,
		renderer:         renderer,
		ban:              ban,
	}
}

// FindByTimestamp tìm bài chờ duyệt theo mã tra cứu timestamp
func (s *DraftService) FindByTimestamp(ctx context.Context, timestamp int64) (models.Draft, error) {
	return s.FindOne(ctx, bson.M{"timestamp": timestamp}, nil)
}

// lookup tìm bài theo cid, không có cid thì theo timestamp
func (s *DraftService) lookup(ctx context.Context, cid string, timestamp int64) (models.Draft, error) {
	var zero models.Draft
	if cid != "" {
		id, err := primitive.ObjectIDFromHex(cid)
		if err != nil {
			return zero, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("无效的cid: %s", cid), common.StatusBadRequest, nil)
		}
		return s.FindOneById(ctx, id)
	}
	if timestamp > 0 {
		return s.FindByTimestamp(ctx, timestamp)
	}
	return zero, common.ErrRequiredField
}

// GetReviewStat trả về số phiếu hiện tại của một bài
func (s *DraftService) GetReviewStat(ctx context.Context, cid string) (models.ReviewStat, error) {
	draft, err := s.lookup(ctx, cid, 0)
	if err != nil {
		return models.ReviewStat{}, err
	}
	return draft.Review.Stat, nil
}
