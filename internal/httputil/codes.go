package httputil

// Machine-readable error codes returned alongside error messages
const (
	CodeInvalidRequestBody    = "invalid_request_body"
	CodeEmailRequired         = "email_required"
	CodeUsernameRequired      = "username_required"
	CodePasswordRequired      = "password_required"
	CodePasswordTooShort      = "password_too_short"
	CodeCredentialsRequired   = "credentials_required"
	CodeEmailAlreadyExists    = "email_already_exists"
	CodeUsernameAlreadyExists = "username_already_exists"
	CodeAccountNotFound       = "account_not_found"
	CodeInvalidAccountID      = "invalid_account_id"
	CodeTooManyRequests       = "too_many_requests"
	CodeInternalError         = "internal_error"

	CodeInvalidAuthHeader  = "invalid_auth_header"
	CodeMissingAuth        = "missing_auth"
	CodeTokenExpired       = "token_expired"
	CodeInvalidToken       = "invalid_token"
	CodeInvalidTokenUserID = "invalid_token_user_id"
)
