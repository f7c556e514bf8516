package domain

// Session is a signed-in user's token record, written by the sign-in service.
type Session struct {
	ID     int64
	UserID int64
	Token  string
}
