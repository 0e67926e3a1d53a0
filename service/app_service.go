package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"launcher/core"
	"launcher/models"
)

// ListOptions filters and orders an app listing.
type ListOptions struct {
	Category string
	Sort     string // camelCase field name
	Order    string // asc (default) or desc
}

// AppService handles app business logic
type AppService struct {
	store     core.RecordStore
	table     string
	validator *core.AppValidator
	importer  *core.Importer
	now       func() time.Time
	newID     func() string
}

// NewAppService constructs an app service over table
func NewAppService(store core.RecordStore, table string, validator *core.AppValidator) *AppService {
	return &AppService{
		store:     store,
		table:     table,
		validator: validator,
		importer:  core.NewImporter(store, table, validator),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// List returns apps, optionally restricted to one category and sorted by a
// wire field name.
func (s *AppService) List(ctx context.Context, opts ListOptions) ([]models.AppEntry, error) {
	filters := models.Record{}
	if c := strings.TrimSpace(opts.Category); c != "" {
		filters[models.ColumnCategory] = strings.ToLower(c)
	}

	recs, err := s.store.List(ctx, s.table, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}

	if opts.Sort != "" {
		sortRecords(recs, core.CamelToSnake(opts.Sort), strings.EqualFold(opts.Order, "desc"))
	}
	return core.FormatApps(recs)
}

// Get fetches an app by ID
func (s *AppService) Get(ctx context.Context, id string) (models.AppEntry, error) {
	rec, err := s.store.Get(ctx, s.table, id)
	if err != nil {
		return models.AppEntry{}, s.wrapMissing(id, err)
	}
	return core.FormatApp(rec)
}

// Create validates and stores a new app with a generated id.
func (s *AppService) Create(ctx context.Context, payload models.AppPayload) (models.AppEntry, error) {
	rec, err := s.validator.Validate(payload, core.ModeCreate)
	if err != nil {
		return models.AppEntry{}, err
	}
	rec[models.ColumnID] = s.newID()

	stored, err := s.store.Insert(ctx, s.table, rec)
	if err != nil {
		return models.AppEntry{}, fmt.Errorf("failed to create app: %w", err)
	}

	log.WithFields(log.Fields{"id": rec[models.ColumnID], "name": rec[models.ColumnName]}).Info("app created")
	return core.FormatApp(stored)
}

// Update applies a partial update to an existing app.
func (s *AppService) Update(ctx context.Context, id string, payload models.AppPayload) (models.AppEntry, error) {
	rec, err := s.validator.Validate(payload, core.ModeUpdate)
	if err != nil {
		return models.AppEntry{}, err
	}

	stored, err := s.store.Update(ctx, s.table, id, rec)
	if err != nil {
		return models.AppEntry{}, s.wrapMissing(id, err)
	}
	return core.FormatApp(stored)
}

// Delete removes an app
func (s *AppService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, s.table, id); err != nil {
		return s.wrapMissing(id, err)
	}
	log.WithField("id", id).Info("app deleted")
	return nil
}

// Launch bumps the launch counter and stamps the launch time.
func (s *AppService) Launch(ctx context.Context, id string) (models.AppEntry, error) {
	rec, err := s.store.Get(ctx, s.table, id)
	if err != nil {
		return models.AppEntry{}, s.wrapMissing(id, err)
	}

	count, err := cast.ToIntE(rec[models.ColumnLaunchCount])
	if err != nil {
		return models.AppEntry{}, core.NewFormatError(fmt.Sprintf("app %s has a malformed launch count", id))
	}

	now := core.Timestamp(s.now())
	stored, err := s.store.Update(ctx, s.table, id, models.Record{
		models.ColumnLaunchCount:  count + 1,
		models.ColumnLastLaunched: now,
		models.ColumnLastModified: now,
	})
	if err != nil {
		return models.AppEntry{}, s.wrapMissing(id, err)
	}

	appLaunches.Inc()
	return core.FormatApp(stored)
}

// Import ingests an import body ({"apps": [...]} or a bare array).
func (s *AppService) Import(ctx context.Context, body []byte) (models.ImportSummary, error) {
	entries, err := core.ParseImportBody(body)
	if err != nil {
		return models.ImportSummary{}, err
	}

	summary, err := s.importer.ImportBatch(ctx, entries)
	importedApps.WithLabelValues("imported").Add(float64(summary.Imported))
	importedApps.WithLabelValues("updated").Add(float64(summary.Updated))
	if err != nil {
		return summary, fmt.Errorf("import failed: %w", err)
	}
	importedApps.WithLabelValues("skipped").Add(float64(summary.Total - summary.Imported - summary.Updated))

	log.WithFields(log.Fields{
		"imported": summary.Imported,
		"updated":  summary.Updated,
		"total":    summary.Total,
	}).Info("apps imported")
	return summary, nil
}

func (s *AppService) wrapMissing(id string, err error) error {
	if core.IsNotFound(err) {
		return core.NewNotFoundError(fmt.Sprintf("App %s not found", id))
	}
	return err
}

// sortRecords orders recs by column. Missing values sort first, numbers
// compare numerically and everything else as text.
func sortRecords(recs []models.Record, column string, desc bool) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i][column], recs[j][column]
		if desc {
			a, b = b, a
		}
		return compareValues(a, b) < 0
	})
}

func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if isNumber(a) && isNumber(b) {
		fa, fb := cast.ToFloat64(a), cast.ToFloat64(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(cast.ToString(a), cast.ToString(b))
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}
	return false
}
