package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"launcher/models"
)

// Importer ingests batches of app payloads, updating apps whose id already
// exists and inserting the rest.
type Importer struct {
	Store     RecordStore
	Table     string
	Validator *AppValidator
	NewID     func() string
}

// NewImporter builds an importer writing to table.
func NewImporter(store RecordStore, table string, validator *AppValidator) *Importer {
	return &Importer{
		Store:     store,
		Table:     table,
		Validator: validator,
		NewID:     uuid.NewString,
	}
}

// ImportBatch processes raw entries in order. Entries that fail to decode or
// validate are skipped; a store failure stops the batch and is returned with
// the counts committed so far. Total is always len(raw).
func (im *Importer) ImportBatch(ctx context.Context, raw []json.RawMessage) (models.ImportSummary, error) {
	summary := models.ImportSummary{Total: len(raw)}

	for i, entry := range raw {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		var payload models.AppPayload
		if err := json.Unmarshal(entry, &payload); err != nil {
			log.WithField("index", i).WithError(err).Debug("import: skipping undecodable entry")
			continue
		}

		updated, err := im.importOne(ctx, payload)
		if err != nil {
			if IsValidation(err) {
				log.WithField("index", i).WithError(err).Debug("import: skipping invalid entry")
				continue
			}
			return summary, fmt.Errorf("import entry %d: %w", i, err)
		}
		if updated {
			summary.Updated++
		} else {
			summary.Imported++
		}
	}

	return summary, nil
}

func (im *Importer) importOne(ctx context.Context, payload models.AppPayload) (updated bool, err error) {
	id, hasID := payload.SuppliedID()
	if hasID {
		_, err := im.Store.Get(ctx, im.Table, id)
		switch {
		case err == nil:
			rec, err := im.Validator.Validate(payload, ModeUpdate)
			if err != nil {
				return false, err
			}
			if _, err := im.Store.Update(ctx, im.Table, id, rec); err != nil {
				return false, err
			}
			return true, nil
		case !IsNotFound(err):
			return false, err
		}
	}

	rec, err := im.Validator.Validate(payload, ModeCreate)
	if err != nil {
		return false, err
	}
	if !hasID {
		id = im.NewID()
	}
	rec[models.ColumnID] = id
	if _, err := im.Store.Insert(ctx, im.Table, rec); err != nil {
		return false, err
	}
	return false, nil
}

// ParseImportBody extracts the entries of an import body, which is either
// {"apps": [...]} or a bare array.
func ParseImportBody(body []byte) ([]json.RawMessage, error) {
	if !gjson.ValidBytes(body) {
		return nil, NewValidationError("invalid JSON body")
	}

	root := gjson.ParseBytes(body)
	list := root
	if root.IsObject() {
		list = root.Get("apps")
	}
	if !list.IsArray() {
		return nil, NewValidationError("invalid data format - expected array of apps")
	}

	items := list.Array()
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		out = append(out, json.RawMessage(item.Raw))
	}
	return out, nil
}
