package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/apex/log"

	"launcher/core"
	"launcher/models"
)

// Outcomes of CategoryService.Add.
const (
	StatusSuccess = "success"
	StatusExists  = "exists"
)

// CategoryService handles category business logic
type CategoryService struct {
	store           core.RecordStore
	table           string
	appsTable       string
	defaultCategory string
}

// NewCategoryService constructs a category service
func NewCategoryService(store core.RecordStore, table, appsTable, defaultCategory string) *CategoryService {
	if defaultCategory == "" {
		defaultCategory = core.DefaultCategory
	}
	return &CategoryService{
		store:           store,
		table:           table,
		appsTable:       appsTable,
		defaultCategory: defaultCategory,
	}
}

// List returns the category names, sorted. An empty store reports the
// default category alone.
func (s *CategoryService) List(ctx context.Context) ([]string, error) {
	recs, err := s.store.List(ctx, s.table, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	names := make([]string, 0, len(recs))
	for _, rec := range recs {
		if name, ok := rec.String("name"); ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return []string{s.defaultCategory}, nil
	}
	sort.Strings(names)
	return names, nil
}

// Add validates name and stores it unless it already exists. It returns the
// normalized name and StatusSuccess or StatusExists.
func (s *CategoryService) Add(ctx context.Context, name string) (string, string, error) {
	name, err := core.ValidateCategoryName(name)
	if err != nil {
		return "", "", err
	}

	existing, err := s.store.List(ctx, s.table, models.Record{"name": name})
	if err != nil {
		return "", "", fmt.Errorf("failed to add category: %w", err)
	}
	if len(existing) > 0 {
		return name, StatusExists, nil
	}

	if _, err := s.store.Insert(ctx, s.table, models.Record{"name": name}); err != nil {
		return "", "", fmt.Errorf("failed to add category: %w", err)
	}
	log.WithField("category", name).Info("category added")
	return name, StatusSuccess, nil
}

// Apps lists the apps filed under category.
func (s *CategoryService) Apps(ctx context.Context, category string) ([]models.AppEntry, error) {
	recs, err := s.store.List(ctx, s.appsTable, models.Record{
		models.ColumnCategory: strings.ToLower(strings.TrimSpace(category)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get apps for category %s: %w", category, err)
	}
	return core.FormatApps(recs)
}
