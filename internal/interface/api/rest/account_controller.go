package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filestore-api/internal/application/ports"
	accountDomain "filestore-api/internal/domain/account"
	"filestore-api/internal/domain/command"
	accountDTO "filestore-api/internal/interface/api/rest/dto/account"
	"filestore-api/internal/interface/api/rest/middleware"
)

type AccountController struct {
	bus    ports.Bus
	logger *zap.Logger
}

func NewAccountController(
	r *gin.Engine,
	bus ports.Bus,
	logger *zap.Logger,
) *AccountController {
	ac := &AccountController{
		bus:    bus,
		logger: logger,
	}

	r.GET(RouteAccounts, middleware.AuthMiddleware(bus), ac.GetAccountsHandler)

	return ac
}

func (ac *AccountController) GetAccountsHandler(c *gin.Context) {
	res, err := ac.bus.Handle(c.Request.Context(), command.GetAccounts{})
	if err != nil {
		status, msg := statusFromError(err)
		c.JSON(status, gin.H{"error": msg})
		ac.logger.Error("GetAccounts() error", zap.Error(err))
		return
	}

	as, _ := res.(accountDomain.Accounts)
	c.JSON(http.StatusOK, accountDTO.ResponseData{
		Data: accountDTO.ToResponseAccounts(as),
	})
}
