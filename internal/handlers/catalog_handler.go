package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coinfolio/internal/models"
	"coinfolio/internal/services"
)

// CatalogHandler handles portfolio, wallet and asset requests.
type CatalogHandler struct {
	catalog services.CatalogServicer
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog services.CatalogServicer) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// CreatePortfolioRequest represents the request payload for creating a portfolio.
type CreatePortfolioRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	BaseCurrency string `json:"base_currency" binding:"omitempty,iso4217"`
}

// CreateWalletRequest represents the request payload for creating a wallet.
type CreateWalletRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Kind string `json:"kind" binding:"omitempty,wallet_kind"`
}

// CreateAssetRequest represents the request payload for creating an asset.
type CreateAssetRequest struct {
	Symbol string `json:"symbol" binding:"required,max=20"`
	Name   string `json:"name" binding:"max=100"`
	Kind   string `json:"kind" binding:"omitempty,asset_kind"`
}

// CreatePortfolio handles the creation of a portfolio
// @Summary     Create a portfolio
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Param       request body CreatePortfolioRequest true "Portfolio details"
// @Success     201 {object} models.Portfolio "Portfolio created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /portfolios [post]
func (h *CatalogHandler) CreatePortfolio(c *gin.Context) {
	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	portfolio, err := h.catalog.CreatePortfolio(c.Request.Context(), req.Name, req.BaseCurrency)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"portfolio": portfolio})
}

// ListPortfolios handles listing portfolios
// @Summary     List portfolios
// @Tags        portfolios
// @Produce     json
// @Success     200 {array} models.Portfolio "Portfolios"
// @Router      /portfolios [get]
func (h *CatalogHandler) ListPortfolios(c *gin.Context) {
	portfolios, err := h.catalog.ListPortfolios(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portfolios": portfolios})
}

// GetPortfolio handles the retrieval of a portfolio with its wallets
// @Summary     Get a portfolio
// @Tags        portfolios
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} models.Portfolio "Portfolio"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id} [get]
func (h *CatalogHandler) GetPortfolio(c *gin.Context) {
	portfolio, err := h.catalog.GetPortfolio(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// CreateWallet handles the creation of a wallet inside a portfolio
// @Summary     Create a wallet
// @Tags        wallets
// @Accept      json
// @Produce     json
// @Param       id      path string              true "Portfolio ID"
// @Param       request body CreateWalletRequest true "Wallet details"
// @Success     201 {object} models.Wallet "Wallet created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/wallets [post]
func (h *CatalogHandler) CreateWallet(c *gin.Context) {
	var req CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	wallet, err := h.catalog.CreateWallet(c.Request.Context(), c.Param("id"), req.Name, models.WalletKind(req.Kind))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"wallet": wallet})
}

// ListWallets handles listing the wallets of a portfolio
// @Summary     List wallets
// @Tags        wallets
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Success     200 {array} models.Wallet "Wallets"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/wallets [get]
func (h *CatalogHandler) ListWallets(c *gin.Context) {
	wallets, err := h.catalog.ListWallets(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallets": wallets})
}

// GetWallet handles the retrieval of a wallet
// @Summary     Get a wallet
// @Tags        wallets
// @Produce     json
// @Param       id path string true "Wallet ID"
// @Success     200 {object} models.Wallet "Wallet"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Router      /wallets/{id} [get]
func (h *CatalogHandler) GetWallet(c *gin.Context) {
	wallet, err := h.catalog.GetWallet(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": wallet})
}

// CreateAsset handles adding an asset to the catalog
// @Summary     Create an asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} models.Asset "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate symbol"
// @Router      /assets [post]
func (h *CatalogHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}

	asset, err := h.catalog.CreateAsset(c.Request.Context(), req.Symbol, req.Name, models.AssetKind(req.Kind))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// ListAssets handles listing the asset catalog
// @Summary     List assets
// @Tags        assets
// @Produce     json
// @Success     200 {array} models.Asset "Assets"
// @Router      /assets [get]
func (h *CatalogHandler) ListAssets(c *gin.Context) {
	assets, err := h.catalog.ListAssets(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// GetAsset handles the retrieval of an asset
// @Summary     Get an asset
// @Tags        assets
// @Produce     json
// @Param       id path string true "Asset ID"
// @Success     200 {object} models.Asset "Asset"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [get]
func (h *CatalogHandler) GetAsset(c *gin.Context) {
	asset, err := h.catalog.GetAsset(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset": asset})
}
