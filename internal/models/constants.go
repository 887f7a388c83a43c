package models

// Роли пользователей
const (
	RoleClient     = "client"
	RoleFreelancer = "freelancer"
	RoleAdmin      = "admin"
)

// ProjectStatus константы статусов проектов
const (
	ProjectStatusOpen          = "open"
	ProjectStatusInProgress    = "in_progress"
	ProjectStatusPendingReview = "pending_review"
	ProjectStatusCompleted     = "completed"
	ProjectStatusCancelled     = "cancelled"
)

// BidStatus константы статусов ставок
const (
	BidStatusPending  = "pending"
	BidStatusAccepted = "accepted"
	BidStatusRejected = "rejected"
)

// ValidRoles список валидных ролей
var ValidRoles = map[string]struct{}{
	RoleClient:     {},
	RoleFreelancer: {},
	RoleAdmin:      {},
}

// ValidCategories закрытый список категорий проектов
var ValidCategories = map[string]struct{}{
	"web_development":    {},
	"mobile_development": {},
	"design":             {},
	"writing":            {},
	"marketing":          {},
	"data_science":       {},
	"other":              {},
}

// ValidProjectStatuses список валидных статусов проектов
var ValidProjectStatuses = map[string]struct{}{
	ProjectStatusOpen:          {},
	ProjectStatusInProgress:    {},
	ProjectStatusPendingReview: {},
	ProjectStatusCompleted:     {},
	ProjectStatusCancelled:     {},
}
