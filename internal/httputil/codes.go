package httputil

// Machine-readable error codes returned alongside error messages so clients
// don't have to parse human-facing text.
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeFieldsRequired     = "FIELDS_REQUIRED"
	CodeDomainNotAllowed   = "EMAIL_DOMAIN_NOT_ALLOWED"

	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeContactNotFound    = "CONTACT_NOT_FOUND"

	CodeEmailNotVerified   = "EMAIL_NOT_VERIFIED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"

	CodeInvalidToken      = "INVALID_TOKEN"
	CodeTokenExpired      = "TOKEN_EXPIRED"
	CodeTokenRequired     = "TOKEN_REQUIRED"
	CodeInvalidAuthHeader = "INVALID_AUTH_HEADER"
	CodeMissingAuth       = "MISSING_AUTH"

	CodeMailDeliveryFailed = "MAIL_DELIVERY_FAILED"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeCooldownActive     = "COOLDOWN_ACTIVE"
	CodeInternalError      = "INTERNAL_ERROR"
)
