package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"vibecode/internal/app/workspace"
	"vibecode/internal/pkg/auth/jwt"
	"vibecode/internal/pkg/errs"
	"vibecode/internal/pkg/logx"
	"vibecode/internal/pkg/randx"
	"vibecode/internal/pkg/req"
	"vibecode/internal/pkg/resp"
)

const presignDuration = 5 * time.Minute

type PresignUploadInput struct {
	ProjectCode string `json:"projectCode"`
	FileName    string `json:"fileName"`
	MimeType    string `json:"mimeType"`
	FileSize    int64  `json:"fileSize"`
}

// requireProjectAccess loads a project by code and checks the caller owns it.
func requireProjectAccess(r *http.Request, deps *AppDeps, identity *jwt.Payload, code string) *errs.CustomError {
	if !randx.IsValidProjectCode(code) {
		return errs.NewError(errs.ErrProjectNotFound)
	}

	project, err := deps.Store.GetProjectByCode(r.Context(), code)
	if err != nil {
		return errs.NewError(errs.ErrProjectNotFound)
	}

	var callerID pgtype.UUID
	if err := callerID.Scan(identity.ID); err != nil {
		return errs.NewError(errs.ErrUnauthorized)
	}

	if project.OwnerID != callerID {
		return errs.NewError(errs.ErrProjectAccessDenied)
	}

	return nil
}

// HandlePresignUploadURL validates a workspace file and returns a short-lived
// URL the client uploads to directly.
func HandlePresignUploadURL(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input PresignUploadInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := requireProjectAccess(r, deps, identity, input.ProjectCode); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := workspace.ValidateFileSize(input.FileSize); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := workspace.ValidateFileType(input.FileName, input.MimeType); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ext := strings.ToLower(filepath.Ext(input.FileName))
		key := fmt.Sprintf("%s/%s%s", input.ProjectCode, randx.FileID(), ext)

		url, err := deps.StorageService.PresignUpload(r.Context(), key, input.MimeType, input.FileSize, presignDuration)
		if err != nil {
			logx.Error(err, "failed to presign upload url", "key", key)
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"uploadUrl": url,
			"key":       key,
			"expiresIn": int(presignDuration.Seconds()),
		})
	}
}

// HandlePresignDownloadURL returns a short-lived download URL for a workspace
// file key. The key must point inside a project the caller owns.
func HandlePresignDownloadURL(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		key := r.URL.Query().Get("key")
		projectCode, _, found := strings.Cut(key, "/")
		if !found || !randx.IsValidProjectCode(projectCode) {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileKeyInvalid))
			return
		}

		if customErr := requireProjectAccess(r, deps, identity, projectCode); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		url, err := deps.StorageService.PresignDownload(r.Context(), key, presignDuration)
		if err != nil {
			logx.Error(err, "failed to presign download url", "key", key)
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"downloadUrl": url,
			"expiresIn":   int(presignDuration.Seconds()),
		})
	}
}
