package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgtype"

	"vibecode/internal/app/db"
	"vibecode/internal/pkg/auth/jwt"
	"vibecode/internal/pkg/errs"
	"vibecode/internal/pkg/logx"
	"vibecode/internal/pkg/randx"
	"vibecode/internal/pkg/req"
	"vibecode/internal/pkg/resp"
)

const readmeSeed = "# %s\n\nShared workspace created with VibeCode.\n"

type CreateProjectInput struct {
	Name string `json:"name"`
}

// projectResponse shapes a project record for API clients.
func projectResponse(p db.Project) map[string]any {
	return map[string]any{
		"id":        p.ID.String(),
		"code":      p.Code,
		"name":      p.Name,
		"createdAt": p.CreatedAt.Time.Format(time.RFC3339),
	}
}

// HandleCreateProject registers a new project for the authenticated account
// and seeds its workspace with a starter README.
func HandleCreateProject(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input CreateProjectInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		name := strings.TrimSpace(input.Name)
		nameLen := utf8.RuneCountInString(name)
		if nameLen < 1 || nameLen > 100 {
			resp.RespondError(w, r, errs.NewError(errs.ErrProjectNameInvalid))
			return
		}

		var ownerID pgtype.UUID
		if err := ownerID.Scan(identity.ID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		code, err := randx.ProjectCode()
		if err != nil {
			logx.Error(err, "failed to generate project code")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		project, err := deps.Store.CreateProject(r.Context(), code, name, ownerID)
		if err != nil {
			if db.IsUniqueViolation(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrProjectCodeExists))
				return
			}

			logx.Error(err, "failed to create project in database", "owner_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		// Seed the workspace so clients always find at least one file.
		// Project creation succeeds even if the seed upload fails.
		readmeKey := project.Code + "/README.md"
		readmeBody := strings.NewReader(fmt.Sprintf(readmeSeed, project.Name))
		if err := deps.StorageService.Upload(r.Context(), readmeKey, "text/markdown", readmeBody); err != nil {
			logx.Error(err, "failed to seed workspace README", "project_code", project.Code)
		}

		logx.Info("project created", "code", project.Code, "owner_id", identity.ID)

		resp.RespondSuccess(w, r, map[string]any{
			"project": projectResponse(project),
		})
	}
}

// HandleListProjects returns the authenticated account's projects, newest
// first.
func HandleListProjects(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var ownerID pgtype.UUID
		if err := ownerID.Scan(identity.ID); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		projects, err := deps.Store.ListProjectsByOwner(r.Context(), ownerID)
		if err != nil {
			logx.Error(err, "failed to list projects", "owner_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		items := make([]map[string]any, 0, len(projects))
		for _, p := range projects {
			items = append(items, projectResponse(p))
		}

		resp.RespondSuccess(w, r, map[string]any{
			"projects": items,
		})
	}
}
