/*
Package errs provides the custom error type and the application-level error codes.

Codes identify specific business or system failures both inside the server and
on the wire to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body is not valid JSON.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after the JSON document.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body exceeded the server limit.
	ErrRequestEntityTooLarge = 1005

	// ErrRateLimitExceeded indicates that the request rate exceeded the configured limit.
	ErrRateLimitExceeded = 1006
)

// 2xxx: Project and Workspace Errors
const (
	// ErrProjectNameInvalid indicates a missing or overlong project name.
	ErrProjectNameInvalid = 2101

	// ErrProjectNotFound indicates that the requested project does not exist.
	ErrProjectNotFound = 2102

	// ErrProjectCodeExists indicates a collision on the generated project code.
	ErrProjectCodeExists = 2103

	// ErrProjectAccessDenied indicates the identity does not own the project.
	ErrProjectAccessDenied = 2104

	// ErrFileSizeTooLarge indicates a workspace file above the size limit.
	ErrFileSizeTooLarge = 2201

	// ErrFileTypeInvalid indicates a workspace file with a disallowed extension or MIME type.
	ErrFileTypeInvalid = 2202

	// ErrFileKeyInvalid indicates a storage key outside the caller's project prefix.
	ErrFileKeyInvalid = 2203
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrAlreadyLoggedIn indicates an auth request carrying a valid identity token.
	ErrAlreadyLoggedIn = 3001

	// ErrInvalidEmail indicates a malformed email address.
	ErrInvalidEmail = 3002

	// ErrInvalidPassword indicates a password outside the accepted length range.
	ErrInvalidPassword = 3003

	// ErrUserAlreadyExists indicates that the email is already registered.
	ErrUserAlreadyExists = 3004

	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = 3005

	// ErrUserNotFound indicates that the account backing a token no longer exists.
	ErrUserNotFound = 3006

	// ErrOldPasswordInvalid indicates that the current password did not match on change.
	ErrOldPasswordInvalid = 3007

	// ErrUnauthorized indicates a missing or invalid identity token.
	ErrUnauthorized = 3008
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal server error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates a failure talking to the object store.
	ErrFileStorageFailed = 5001
)
