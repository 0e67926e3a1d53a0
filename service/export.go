package service

import (
	"context"
	"time"

	"launcher/core"
	"launcher/models"
)

// Export dumps every app together with the current settings.
func (s *Services) Export(ctx context.Context) (models.Export, error) {
	apps, err := s.Apps.List(ctx, ListOptions{Sort: "name"})
	if err != nil {
		return models.Export{}, err
	}
	doc, err := s.Settings.Get(ctx)
	if err != nil {
		return models.Export{}, err
	}
	return models.Export{
		Apps:       apps,
		Settings:   doc.Settings,
		ExportedAt: core.Timestamp(s.clock()),
	}, nil
}

func (s *Services) clock() time.Time {
	if s.Apps.now != nil {
		return s.Apps.now()
	}
	return time.Now()
}
