package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bidworks/backend/internal/dto"
	"github.com/bidworks/backend/internal/http/handlers/common"
	"github.com/bidworks/backend/internal/service"
	"github.com/bidworks/backend/internal/ws"
)

// WalletHandler предоставляет HTTP слой для операций с кошельком.
type WalletHandler struct {
	wallets *service.WalletService
	hub     *ws.Hub
}

// NewWalletHandler создаёт хэндлер.
func NewWalletHandler(wallets *service.WalletService, hub *ws.Hub) *WalletHandler {
	return &WalletHandler{wallets: wallets, hub: hub}
}

// Balance обрабатывает GET /api/wallet.
func (h *WalletHandler) Balance(c *gin.Context) {
	actor, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	wallet, err := h.wallets.Balance(c.Request.Context(), actor)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WalletResponse{Wallet: wallet})
}

// Deposit обрабатывает POST /api/wallet/deposit.
func (h *WalletHandler) Deposit(c *gin.Context) {
	actor, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	wallet, tx, err := h.wallets.Deposit(c.Request.Context(), actor, req.Amount)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WalletResponse{Wallet: wallet, Transaction: tx})
}

// Pay обрабатывает POST /api/wallet/pay.
func (h *WalletHandler) Pay(c *gin.Context) {
	actor, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	freelancerID, err := uuid.Parse(req.FreelancerID)
	if err != nil {
		common.RespondBadRequest(c, "freelancer_id должен быть валидным UUID")
		return
	}

	wallet, tx, err := h.wallets.Pay(c.Request.Context(), actor, freelancerID, req.Amount)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if h.hub != nil {
		_ = h.hub.Notify(freelancerID, ws.EventPaymentReceived, tx)
	}

	c.JSON(http.StatusOK, dto.WalletResponse{Wallet: wallet, Transaction: tx})
}

// Transactions обрабатывает GET /api/wallet/transactions.
func (h *WalletHandler) Transactions(c *gin.Context) {
	actor, err := common.CurrentUser(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	limit, offset := common.GetPagination(c)

	items, err := h.wallets.Transactions(c.Request.Context(), actor, limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: items,
		Limit:        limit,
		Offset:       offset,
	})
}
