package constants

const (
	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 6

	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"

	// BearerScheme is the Authorization header scheme for access tokens.
	BearerScheme = "Bearer"

	// MaxSearchLength caps the q parameter on idea listing.
	MaxSearchLength = 200

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
