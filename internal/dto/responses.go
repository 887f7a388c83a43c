package dto

import (
	"github.com/bidworks/backend/internal/models"
)

// ErrorResponse standard error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse standard success payload with optional data
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AuthResponse returned by register/login
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AwardResponse returned by the award endpoint: the accepted bid and the
// project after the transition.
type AwardResponse struct {
	Bid     *models.Bid     `json:"bid"`
	Project *models.Project `json:"project"`
}

// BidListResponse paginated list of bids
type BidListResponse struct {
	Bids   []models.Bid `json:"bids"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// ProjectListResponse paginated list of projects
type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// WalletResponse wallet state after an operation
type WalletResponse struct {
	Wallet      *models.Wallet      `json:"wallet"`
	Transaction *models.Transaction `json:"transaction,omitempty"`
}

// TransactionListResponse paginated transaction history
type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}

// ReviewListResponse reviews left about a user
type ReviewListResponse struct {
	Reviews []models.Review `json:"reviews"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// ProfileResponse caller identity with rating
type ProfileResponse struct {
	User   *models.User       `json:"user"`
	Rating *models.UserRating `json:"rating,omitempty"`
}
