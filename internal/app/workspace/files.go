/*
Package workspace holds validation rules for project workspace files.

Uploads go straight to object storage through presigned URLs, so the rules here
are the only server-side gate on what lands in a workspace.
*/
package workspace

import (
	"path/filepath"
	"strings"

	"vibecode/internal/pkg/errs"
)

const (
	// MaxFileSizeMB is the maximum allowed workspace file size in megabytes.
	MaxFileSizeMB = 10

	// MaxFileSize is the maximum allowed workspace file size in bytes.
	MaxFileSize = MaxFileSizeMB * 1024 * 1024
)

// ExtToMIME maps permitted workspace file extensions to the MIME type the
// presigned upload must declare.
var ExtToMIME = map[string]string{
	".go":   "text/plain",
	".js":   "text/javascript",
	".ts":   "text/plain",
	".tsx":  "text/plain",
	".py":   "text/x-python",
	".rs":   "text/plain",
	".css":  "text/css",
	".html": "text/html",
	".json": "application/json",
	".yaml": "text/plain",
	".yml":  "text/plain",
	".toml": "text/plain",
	".md":   "text/markdown",
	".txt":  "text/plain",
	".sh":   "text/plain",
	".sql":  "text/plain",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".svg":  "image/svg+xml",
	".gif":  "image/gif",
}

// ValidateFileSize checks that the declared size is positive and within limits.
func ValidateFileSize(fileSize int64) *errs.CustomError {
	if fileSize <= 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}

	if fileSize > MaxFileSize {
		return errs.NewError(errs.ErrFileSizeTooLarge)
	}

	return nil
}

// ValidateFileType checks that the file name carries a permitted extension and
// that the declared MIME type matches it.
func ValidateFileType(fileName string, mimeType string) *errs.CustomError {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" || len(ext) < 2 {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	expectedMIME, ok := ExtToMIME[ext]
	if !ok {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	if expectedMIME != strings.ToLower(mimeType) {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	return nil
}
