package core

import (
	"context"

	"launcher/models"
)

// RecordStore is the persistence collaborator. Get, Update and Delete address
// rows by their "id" column and report absent rows with a NotFound error;
// every other failure is a Storage error.
type RecordStore interface {
	Get(ctx context.Context, table, id string) (models.Record, error)
	List(ctx context.Context, table string, filters models.Record) ([]models.Record, error)
	Insert(ctx context.Context, table string, rec models.Record) (models.Record, error)
	Update(ctx context.Context, table, id string, rec models.Record) (models.Record, error)
	Delete(ctx context.Context, table, id string) error
}
