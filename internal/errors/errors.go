// Package errors provides the typed error taxonomy of the coinfolio ledger.
// Every service-layer failure is an *AppError so that callers (HTTP, CLI)
// can render it directly without inspecting internal details.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional diagnostic details and
// an optional internal error. Category names the general sentinel
// (INVALID_INPUT, NOT_FOUND, ...) a specific code belongs to.
type AppError struct {
	Code       string            `json:"code"`
	Category   string            `json:"-"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	StatusCode int               `json:"-"`
	Internal   error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an *AppError with the same code, or the
// general sentinel of e's category. errors.Is(ErrWalletNotFound, ErrNotFound)
// holds; the reverse does not.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !stderrors.As(target, &t) {
		return false
	}
	return t.Code == e.Code || (e.Category != "" && t.Code == e.Category)
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Category:   sentinel.Category,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Category:   sentinel.Category,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithDetails creates a new AppError carrying structured diagnostic fields.
func WithDetails(sentinel *AppError, message string, details map[string]string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Category:   sentinel.Category,
		Message:    message,
		Details:    details,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrNotAllowed     = &AppError{Code: "NOT_ALLOWED", Message: "Operation not allowed", StatusCode: http.StatusForbidden}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Catalog errors.
var (
	ErrPortfolioNotFound = &AppError{Code: "PORTFOLIO_NOT_FOUND", Category: "NOT_FOUND", Message: "Portfolio not found", StatusCode: http.StatusNotFound}
	ErrWalletNotFound    = &AppError{Code: "WALLET_NOT_FOUND", Category: "NOT_FOUND", Message: "Wallet not found", StatusCode: http.StatusNotFound}
	ErrAssetNotFound     = &AppError{Code: "ASSET_NOT_FOUND", Category: "NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
	ErrDuplicateAsset    = &AppError{Code: "DUPLICATE_ASSET", Message: "An asset with this symbol already exists", StatusCode: http.StatusConflict}
)

// Ledger errors.
var (
	ErrMovementNotFound     = &AppError{Code: "MOVEMENT_NOT_FOUND", Category: "NOT_FOUND", Message: "Movement not found", StatusCode: http.StatusNotFound}
	ErrInvalidMovementType  = &AppError{Code: "INVALID_MOVEMENT_TYPE", Category: "INVALID_INPUT", Message: "Unsupported movement type", StatusCode: http.StatusBadRequest}
	ErrSameWalletTransfer   = &AppError{Code: "SAME_WALLET_TRANSFER", Category: "INVALID_INPUT", Message: "Cannot move funds to the same wallet", StatusCode: http.StatusBadRequest}
	ErrSameAssetSwap        = &AppError{Code: "SAME_ASSET_SWAP", Category: "INVALID_INPUT", Message: "Cannot swap an asset for itself", StatusCode: http.StatusBadRequest}
	ErrInsufficientHoldings = &AppError{Code: "INSUFFICIENT_HOLDINGS", Message: "Insufficient holdings for this operation", StatusCode: http.StatusConflict}
)

// HoldingShortfall describes an operation that would leave a holding below zero.
// It is carried as the Internal error of an INSUFFICIENT_HOLDINGS AppError.
type HoldingShortfall struct {
	WalletID string
	AssetID  string
	Current  decimal.Decimal
	WouldBe  decimal.Decimal
}

func (s *HoldingShortfall) Error() string {
	return fmt.Sprintf("holding %s/%s would drop from %s to %s", s.WalletID, s.AssetID, s.Current, s.WouldBe)
}

// InsufficientHoldings builds the error returned when a guard rejects an operation.
func InsufficientHoldings(walletID, assetID string, current, wouldBe decimal.Decimal) *AppError {
	shortfall := &HoldingShortfall{WalletID: walletID, AssetID: assetID, Current: current, WouldBe: wouldBe}
	return &AppError{
		Code:       ErrInsufficientHoldings.Code,
		Message:    fmt.Sprintf("Insufficient holdings: balance %s would become %s", current, wouldBe),
		StatusCode: ErrInsufficientHoldings.StatusCode,
		Details: map[string]string{
			"wallet_id":         walletID,
			"asset_id":          assetID,
			"current_quantity":  current.String(),
			"would_be_quantity": wouldBe.String(),
		},
		Internal: shortfall,
	}
}

// IsCode reports whether err is an *AppError with the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}
