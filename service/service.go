package service

import (
	"time"

	"launcher/config"
	"launcher/core"
	"launcher/database"
)

// Services groups the launcher services built around one store.
type Services struct {
	Apps       *AppService
	Categories *CategoryService
	Settings   *SettingsService
	Store      database.Store
}

// New wires every service to store using the defaults from cfg.
func New(store database.Store, cfg *config.Config) *Services {
	validator := core.NewAppValidator(cfg.DefaultCategory, cfg.AppStoreURLPrefix)
	tables := store.Tables()

	return &Services{
		Apps:       NewAppService(store, tables.Apps, validator),
		Categories: NewCategoryService(store, tables.Categories, tables.Apps, cfg.DefaultCategory),
		Settings:   NewSettingsService(store, core.NewSettingsReconciler(cfg.DefaultIconSize)),
		Store:      store,
	}
}

// SetClock replaces the time source of every component; tests use it to pin
// timestamps.
func (s *Services) SetClock(now func() time.Time) {
	s.Apps.validator.Now = now
	s.Apps.now = now
	s.Settings.reconciler.Now = now
}
