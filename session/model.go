package session

// Session defines a public type used by authgate APIs.
//
// Session instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Session struct {
	ID     string
	UserID string
	Email  string
	Name   string

	CreatedAt int64
	ExpiresAt int64
}
