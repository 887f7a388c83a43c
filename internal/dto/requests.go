package dto

// RegisterRequest represents the request to register a new user
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Budget      float64 `json:"budget"`
	DeadlineAt  string  `json:"deadline_at" binding:"required"`
}

// UpdateProjectRequest represents the request to update a project
type UpdateProjectRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Budget      *float64 `json:"budget"`
	DeadlineAt  *string  `json:"deadline_at"`
}

// SubmitDeliverableRequest represents the request to submit project deliverable
type SubmitDeliverableRequest struct {
	Description string   `json:"description" binding:"required"`
	Files       []string `json:"files"`
	Notes       *string  `json:"notes"`
}

// CreateBidRequest represents the request to place a bid on a project
type CreateBidRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description" binding:"required"`
}

// UpdateBidRequest represents the request to update a pending bid
type UpdateBidRequest struct {
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
}

// DepositRequest represents the request to add funds to own wallet
type DepositRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// PaymentRequest represents the request to pay a freelancer
type PaymentRequest struct {
	FreelancerID string  `json:"freelancer_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
}

// CreateReviewRequest represents the request to leave a review
type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required"`
	Comment *string `json:"comment"`
}
