package accounthdl

import (
	"fmt"
	"strings"

	accountdto "github.com/xiaofeiTM233/FlowHub/internal/api/account/dto"
	accountmodels "github.com/xiaofeiTM233/FlowHub/internal/api/account/models"
	accountsvc "github.com/xiaofeiTM233/FlowHub/internal/api/account/service"
	basehdl "github.com/xiaofeiTM233/FlowHub/internal/api/base/handler"
	"github.com/xiaofeiTM233/FlowHub/internal/logger"
	"github.com/gofiber/fiber/v3"
)

// AccountHandler xử lý các request liên quan đến tài khoản nền tảng
type AccountHandler struct {
	*basehdl.BaseHandler[accountmodels.Account, accountdto.AccountCreateInput, accountdto.AccountUpdateInput]
	AccountService *accountsvc.AccountService
}

// NewAccountHandler tạo mới AccountHandler
func NewAccountHandler() (*AccountHandler, error) {
	accountService, err := accountsvc.NewAccountService()
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %v", err)
	}
	hdl := &AccountHandler{AccountService: accountService}
	hdl.BaseHandler = basehdl.NewBaseHandler[accountmodels.Account, accountdto.AccountCreateInput, accountdto.AccountUpdateInput](accountService.BaseServiceMongoImpl)
	return hdl, nil
}

// HandleStats làm mới và trả về thống kê tài khoản.
// Query: ?platform=aid1,aid2 để lọc theo aid, bỏ trống để lấy tất cả.
func (h *AccountHandler) HandleStats(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var aids []string
		if param := c.Query("platform", ""); param != "" {
			for _, s := range strings.Split(param, ",") {
				if s = strings.TrimSpace(s); s != "" {
					aids = append(aids, s)
				}
			}
		}

		stats, err := h.AccountService.RefreshStats(c.Context(), aids)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		logger.WithRequestInfo(c, "account").WithField("count", len(stats)).Info("Đã làm mới thống kê tài khoản")
		return basehdl.HandleResponse(c, stats, nil)
	})
}
