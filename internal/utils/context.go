package utils

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "email"
	UserRoleKey  contextKey = "role"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	ProductStatusActive  = "active"
	ProductStatusDisable = "disable"
)
