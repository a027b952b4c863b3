/*
Package errs provides the custom error type and the application-level error codes.

This file maps every code to its client-facing message and HTTP status, used to
standardize HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap holds the CustomError template for every application error code.
// A zero Status falls back to HTTP 200 in NewError.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large."},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Project and Workspace Errors
	ErrProjectNameInvalid:  {Code: ErrProjectNameInvalid, Message: "Invalid project name."},
	ErrProjectNotFound:     {Code: ErrProjectNotFound, Message: "Project not found."},
	ErrProjectCodeExists:   {Code: ErrProjectCodeExists, Message: "Project code already exists."},
	ErrProjectAccessDenied: {Code: ErrProjectAccessDenied, Message: "You do not have access to this project.", Status: http.StatusForbidden},
	ErrFileSizeTooLarge:    {Code: ErrFileSizeTooLarge, Message: "File is too large."},
	ErrFileTypeInvalid:     {Code: ErrFileTypeInvalid, Message: "File type is not allowed."},
	ErrFileKeyInvalid:      {Code: ErrFileKeyInvalid, Message: "Invalid file key."},

	// 3xxx: User, Session, and Security Errors
	ErrAlreadyLoggedIn:    {Code: ErrAlreadyLoggedIn, Message: "You are already signed in."},
	ErrInvalidEmail:       {Code: ErrInvalidEmail, Message: "Invalid email address."},
	ErrInvalidPassword:    {Code: ErrInvalidPassword, Message: "Invalid password."},
	ErrUserAlreadyExists:  {Code: ErrUserAlreadyExists, Message: "An account with this email already exists."},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect email or password."},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found."},
	ErrOldPasswordInvalid: {Code: ErrOldPasswordInvalid, Message: "Current password is incorrect."},
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "File storage operation failed. Please try again.", Status: http.StatusInternalServerError},
}
