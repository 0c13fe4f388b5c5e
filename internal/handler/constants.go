package handler

const (
	APIPrefix = "/rinkdesk/v1"

	MsgNotAuthenticated   = "not authenticated"
	MsgSessionNotFound    = "session not found"
	MsgInvalidRequestBody = "invalid request body"
	MsgInvalidCredentials = "invalid credentials"
	MsgInvalidDateFormat  = "invalid date format, expected YYYY-MM-DD"

	DateFormat = "2006-01-02"
)
