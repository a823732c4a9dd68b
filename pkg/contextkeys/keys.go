package contextkeys

type contextKey string

const (
	UserIDKey      contextKey = "UserID"
	RoleIDKey      contextKey = "RoleID"
	RoleNameKey    contextKey = "RoleName"
	SessionKey     contextKey = "ConsoleSession"
	RequestIDKey   contextKey = "RequestID"
	MustChangePass contextKey = "MustChangePassword"
)
