package handler

import (
	"vibecode/internal/app/collab"
	"vibecode/internal/app/db"
	"vibecode/internal/app/storage"
	"vibecode/internal/configs"
)

// AppDeps bundles the shared dependencies handed to every handler.
type AppDeps struct {
	Registry       *collab.Registry
	Config         *configs.AppConfig
	StorageService storage.StorageService
	Store          *db.Store
}
