package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"

	"launcher/core"
	"launcher/database"
	"launcher/models"
)

// settingsKey is the key/value entry holding the settings document.
const settingsKey = "settings"

// SettingsService loads and stores the singleton settings document.
type SettingsService struct {
	store      database.Store
	reconciler *core.SettingsReconciler
}

// NewSettingsService constructs a settings service
func NewSettingsService(store database.Store, reconciler *core.SettingsReconciler) *SettingsService {
	return &SettingsService{store: store, reconciler: reconciler}
}

// Get returns the stored document, creating the default on first use.
func (s *SettingsService) Get(ctx context.Context) (models.SettingsDocument, error) {
	raw, ok, err := s.store.GetSetting(ctx, settingsKey)
	if err != nil {
		return models.SettingsDocument{}, fmt.Errorf("failed to get settings: %w", err)
	}
	if !ok {
		doc := s.reconciler.DefaultDocument()
		if err := s.save(ctx, doc); err != nil {
			return models.SettingsDocument{}, err
		}
		log.Info("default settings created")
		return doc, nil
	}

	var doc models.SettingsDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return models.SettingsDocument{}, core.NewFormatError(fmt.Sprintf("stored settings are malformed: %v", err))
	}
	if doc.Settings == nil {
		doc.Settings = map[string]any{}
	}
	return doc, nil
}

// Update merges partial into the stored document. Concurrent updates race;
// the last write wins.
func (s *SettingsService) Update(ctx context.Context, partial map[string]any) (models.SettingsDocument, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return models.SettingsDocument{}, err
	}

	doc, err := s.reconciler.Merge(current, partial)
	if err != nil {
		return models.SettingsDocument{}, err
	}
	if err := s.save(ctx, doc); err != nil {
		return models.SettingsDocument{}, err
	}
	return doc, nil
}

// Reset replaces the stored document with the default.
func (s *SettingsService) Reset(ctx context.Context) (models.SettingsDocument, error) {
	doc := s.reconciler.Reset()
	if err := s.save(ctx, doc); err != nil {
		return models.SettingsDocument{}, err
	}
	log.Info("settings reset to defaults")
	return doc, nil
}

func (s *SettingsService) save(ctx context.Context, doc models.SettingsDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.store.SetSetting(ctx, settingsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
