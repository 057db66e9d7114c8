package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "coinfolio/internal/errors"
	"coinfolio/internal/models"
	"coinfolio/internal/pagination"
	"coinfolio/internal/services"
)

// LedgerHandler handles movement, transfer, swap and holding requests.
type LedgerHandler struct {
	ledger services.LedgerServicer
	audit  services.AuditServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledger services.LedgerServicer, audit services.AuditServicer) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, audit: audit}
}

// RegisterMovementRequest represents the request payload for registering a movement.
// Quantities and prices are decimal strings.
type RegisterMovementRequest struct {
	PortfolioID string  `json:"portfolio_id" binding:"required"`
	WalletID    string  `json:"wallet_id" binding:"required"`
	AssetID     string  `json:"asset_id" binding:"required"`
	Type        string  `json:"type" binding:"required,movement_type"`
	Quantity    string  `json:"quantity" binding:"required,positive_decimal"`
	Price       *string `json:"price" binding:"omitempty,decimal_string"`
	FeeQuantity string  `json:"fee_quantity" binding:"omitempty,decimal_string"`
	Timestamp   int64   `json:"timestamp" binding:"omitempty,gt=0"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes" binding:"max=1000"`
}

// EditMovementRequest represents the replacement values of a movement.
type EditMovementRequest struct {
	Type        string  `json:"type" binding:"required,movement_type"`
	Quantity    string  `json:"quantity" binding:"required,positive_decimal"`
	Price       *string `json:"price" binding:"omitempty,decimal_string"`
	FeeQuantity string  `json:"fee_quantity" binding:"omitempty,decimal_string"`
	Timestamp   int64   `json:"timestamp" binding:"required,gt=0"`
	Notes       string  `json:"notes" binding:"max=1000"`
}

// TransferRequest represents the request payload for moving an asset between wallets.
type TransferRequest struct {
	PortfolioID  string `json:"portfolio_id" binding:"required"`
	FromWalletID string `json:"from_wallet_id" binding:"required"`
	ToWalletID   string `json:"to_wallet_id" binding:"required"`
	AssetID      string `json:"asset_id" binding:"required"`
	Quantity     string `json:"quantity" binding:"required,positive_decimal"`
	Timestamp    int64  `json:"timestamp" binding:"omitempty,gt=0"`
	Date         string `json:"date"`
	Notes        string `json:"notes" binding:"max=1000"`
}

// SwapRequest represents the request payload for swapping one asset for another.
type SwapRequest struct {
	PortfolioID  string `json:"portfolio_id" binding:"required"`
	WalletID     string `json:"wallet_id" binding:"required"`
	FromAssetID  string `json:"from_asset_id" binding:"required"`
	ToAssetID    string `json:"to_asset_id" binding:"required"`
	FromQuantity string `json:"from_quantity" binding:"required,positive_decimal"`
	ToQuantity   string `json:"to_quantity" binding:"required,positive_decimal"`
	Timestamp    int64  `json:"timestamp" binding:"omitempty,gt=0"`
	Date         string `json:"date"`
	Notes        string `json:"notes" binding:"max=1000"`
}

func invalidBody(c *gin.Context, err error) {
	respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
}

// RegisterMovement handles the registration of a new movement
// @Summary     Register a movement
// @Description Append a movement to the ledger and update the wallet's holding
// @Tags        movements
// @Accept      json
// @Produce     json
// @Param       request body RegisterMovementRequest true "Movement details"
// @Success     201 {object} services.MovementResult "Movement registered"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Wallet not in portfolio"
// @Failure     404 {object} ErrorResponse "Portfolio, wallet or asset not found"
// @Failure     409 {object} ErrorResponse "Insufficient holdings"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /movements [post]
func (h *LedgerHandler) RegisterMovement(c *gin.Context) {
	var req RegisterMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	in := services.RegisterMovementInput{
		PortfolioID: req.PortfolioID,
		WalletID:    req.WalletID,
		AssetID:     req.AssetID,
		Type:        models.MovementType(req.Type),
		Notes:       req.Notes,
	}
	var err error
	if in.Quantity, err = parseDecimal("quantity", req.Quantity); err != nil {
		respondWithError(c, err)
		return
	}
	if in.Price, err = parseOptionalDecimal("price", req.Price); err != nil {
		respondWithError(c, err)
		return
	}
	if req.FeeQuantity != "" {
		if in.FeeQuantity, err = parseDecimal("fee_quantity", req.FeeQuantity); err != nil {
			respondWithError(c, err)
			return
		}
	}
	if in.Timestamp, err = resolveTimestamp(req.Timestamp, req.Date); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.ledger.RegisterMovement(requestContext(c), in)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// EditMovement handles replacing the mutable fields of a movement
// @Summary     Edit a movement
// @Description Replace type, quantity, price, fee, timestamp and notes of a movement
// @Tags        movements
// @Accept      json
// @Produce     json
// @Param       id      path string              true "Movement ID"
// @Param       request body EditMovementRequest true "New values"
// @Success     200 {object} services.MovementResult "Movement edited"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Movement not found"
// @Failure     409 {object} ErrorResponse "Insufficient holdings"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /movements/{id} [put]
func (h *LedgerHandler) EditMovement(c *gin.Context) {
	var req EditMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	in := services.EditMovementInput{
		MovementID: c.Param("id"),
		Type:       models.MovementType(req.Type),
		Timestamp:  req.Timestamp,
		Notes:      req.Notes,
	}
	var err error
	if in.Quantity, err = parseDecimal("quantity", req.Quantity); err != nil {
		respondWithError(c, err)
		return
	}
	if in.Price, err = parseOptionalDecimal("price", req.Price); err != nil {
		respondWithError(c, err)
		return
	}
	if req.FeeQuantity != "" {
		if in.FeeQuantity, err = parseDecimal("fee_quantity", req.FeeQuantity); err != nil {
			respondWithError(c, err)
			return
		}
	}

	result, err := h.ledger.EditMovement(requestContext(c), in)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteMovement handles removing a movement
// @Summary     Delete a movement
// @Description Remove a movement and reverse its effect on the holding
// @Tags        movements
// @Produce     json
// @Param       id path string true "Movement ID"
// @Success     200 {object} services.MovementResult "Movement deleted"
// @Failure     404 {object} ErrorResponse "Movement not found"
// @Failure     409 {object} ErrorResponse "Insufficient holdings"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /movements/{id} [delete]
func (h *LedgerHandler) DeleteMovement(c *gin.Context) {
	result, err := h.ledger.DeleteMovement(requestContext(c), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetMovement handles the retrieval of a single movement
// @Summary     Get a movement
// @Tags        movements
// @Produce     json
// @Param       id path string true "Movement ID"
// @Success     200 {object} models.Movement "Movement"
// @Failure     404 {object} ErrorResponse "Movement not found"
// @Router      /movements/{id} [get]
func (h *LedgerHandler) GetMovement(c *gin.Context) {
	movement, err := h.ledger.GetMovement(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movement": movement})
}

// GetMovementHistory returns the audit trail of a movement.
// @Summary     Movement history
// @Tags        movements
// @Produce     json
// @Param       id path string true "Movement ID"
// @Success     200 {array} models.AuditLog "Audit entries, oldest first"
// @Router      /movements/{id}/history [get]
func (h *LedgerHandler) GetMovementHistory(c *gin.Context) {
	logs, err := h.audit.History(c.Request.Context(), services.ResourceMovement, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": logs})
}

// ListMovements handles listing a portfolio's movements
// @Summary     List movements
// @Description Paginated, newest-first list of a portfolio's movements with optional filters
// @Tags        movements
// @Produce     json
// @Param       portfolio_id query string true  "Portfolio ID"
// @Param       wallet_id    query string false "Filter by wallet"
// @Param       asset_id     query string false "Filter by asset"
// @Param       type         query string false "Filter by movement type"
// @Param       group_id     query string false "Filter by transfer/swap group"
// @Param       from         query string false "Start time (unix ms, RFC3339 or YYYY-MM-DD)"
// @Param       to           query string false "End time (unix ms, RFC3339 or YYYY-MM-DD)"
// @Param       page         query int    false "Page number (default 1)"
// @Param       page_size    query int    false "Items per page (default 50, max 500)"
// @Success     200 {object} pagination.PageResponse[models.Movement] "Paginated movements"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /movements [get]
func (h *LedgerHandler) ListMovements(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		invalidBody(c, err)
		return
	}

	filter := services.MovementFilter{
		WalletID: optionalQuery(c, "wallet_id"),
		AssetID:  optionalQuery(c, "asset_id"),
		GroupID:  optionalQuery(c, "group_id"),
	}
	if t := c.Query("type"); t != "" {
		mt := models.MovementType(t)
		filter.Type = &mt
	}
	var err error
	if filter.From, err = parseMillisQuery(c, "from"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.To, err = parseMillisQuery(c, "to"); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.ledger.ListMovements(c.Request.Context(), c.Query("portfolio_id"), filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MoveBetweenWallets handles an inter-wallet transfer
// @Summary     Transfer between wallets
// @Description Move a quantity of an asset from one wallet to another of the same portfolio
// @Tags        movements
// @Accept      json
// @Produce     json
// @Param       request body TransferRequest true "Transfer details"
// @Success     201 {object} services.TransferResult "Transfer committed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Wallet not in portfolio"
// @Failure     404 {object} ErrorResponse "Portfolio, wallet or asset not found"
// @Failure     409 {object} ErrorResponse "Insufficient holdings"
// @Router      /transfers [post]
func (h *LedgerHandler) MoveBetweenWallets(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	in := services.TransferInput{
		PortfolioID:  req.PortfolioID,
		FromWalletID: req.FromWalletID,
		ToWalletID:   req.ToWalletID,
		AssetID:      req.AssetID,
		Notes:        req.Notes,
	}
	var err error
	if in.Quantity, err = parseDecimal("quantity", req.Quantity); err != nil {
		respondWithError(c, err)
		return
	}
	if in.Timestamp, err = resolveTimestamp(req.Timestamp, req.Date); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.ledger.MoveBetweenWallets(requestContext(c), in)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// SwapMovement handles an asset swap inside one wallet
// @Summary     Swap assets
// @Description Exchange one asset for another in the same wallet, recorded as a SELL and a BUY
// @Tags        movements
// @Accept      json
// @Produce     json
// @Param       request body SwapRequest true "Swap details"
// @Success     201 {object} services.SwapResult "Swap committed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Wallet not in portfolio"
// @Failure     404 {object} ErrorResponse "Portfolio, wallet or asset not found"
// @Failure     409 {object} ErrorResponse "Insufficient holdings"
// @Router      /swaps [post]
func (h *LedgerHandler) SwapMovement(c *gin.Context) {
	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	in := services.SwapInput{
		PortfolioID: req.PortfolioID,
		WalletID:    req.WalletID,
		FromAssetID: req.FromAssetID,
		ToAssetID:   req.ToAssetID,
		Notes:       req.Notes,
	}
	var err error
	if in.FromQuantity, err = parseDecimal("from_quantity", req.FromQuantity); err != nil {
		respondWithError(c, err)
		return
	}
	if in.ToQuantity, err = parseDecimal("to_quantity", req.ToQuantity); err != nil {
		respondWithError(c, err)
		return
	}
	if in.Timestamp, err = resolveTimestamp(req.Timestamp, req.Date); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.ledger.SwapMovement(requestContext(c), in)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ListHoldings handles listing the holdings of a portfolio
// @Summary     List holdings
// @Tags        holdings
// @Produce     json
// @Param       id        path  string true  "Portfolio ID"
// @Param       wallet_id query string false "Restrict to one wallet"
// @Success     200 {array} models.Holding "Holdings"
// @Failure     403 {object} ErrorResponse "Wallet not in portfolio"
// @Failure     404 {object} ErrorResponse "Portfolio or wallet not found"
// @Router      /portfolios/{id}/holdings [get]
func (h *LedgerHandler) ListHoldings(c *gin.Context) {
	holdings, err := h.ledger.ListHoldings(c.Request.Context(), c.Param("id"), optionalQuery(c, "wallet_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"holdings": holdings})
}

// GetHolding handles the retrieval of one wallet/asset holding
// @Summary     Get a holding
// @Tags        holdings
// @Produce     json
// @Param       id       path string true "Wallet ID"
// @Param       asset_id path string true "Asset ID"
// @Success     200 {object} models.Holding "Holding (zero if never touched)"
// @Failure     404 {object} ErrorResponse "Wallet or asset not found"
// @Router      /wallets/{id}/holdings/{asset_id} [get]
func (h *LedgerHandler) GetHolding(c *gin.Context) {
	holding, err := h.ledger.GetHolding(c.Request.Context(), c.Param("id"), c.Param("asset_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"holding": holding})
}
