/*
Package req provides helpers for parsing and binding HTTP request bodies.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"vibecode/internal/pkg/errs"
)

// MaxJSONBodySize is the maximum accepted size (1 MB) of a JSON request body,
// enforced via http.MaxBytesReader.
const MaxJSONBodySize int64 = 1 << 20

// BindJSON binds the JSON request body to dst. It requires an application/json
// Content-Type, rejects unknown fields, and rejects trailing content.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

// LimitBody is middleware that caps every request body at MaxJSONBodySize.
func LimitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)
		next.ServeHTTP(w, r)
	})
}
