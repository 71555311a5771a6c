// Package store persists exhibitions, one document per exhibition.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ajitpratap0/vrem/pkg/models"
)

// Summary identifies a stored exhibition without loading its rooms
type Summary struct {
	ID          primitive.ObjectID `bson:"_id" json:"id" yaml:"id"`
	Name        string             `bson:"name" json:"name" yaml:"name"`
	Description string             `bson:"description" json:"description" yaml:"description"`
}

// Store is the exhibition repository
type Store interface {
	// GetByName returns the first exhibition with the given name, or a
	// not found error
	GetByName(ctx context.Context, name string) (*models.Exhibition, error)
	// GetByID returns the exhibition with the given id, or a not found error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Exhibition, error)
	// Save replaces the whole document with the same id, inserting it if
	// there is none
	Save(ctx context.Context, e *models.Exhibition) error
	// DeleteByName removes every exhibition with the given name and
	// returns how many were removed
	DeleteByName(ctx context.Context, name string) (int64, error)
	// List returns all exhibitions ordered by name
	List(ctx context.Context) ([]Summary, error)
	// Close releases the connection
	Close(ctx context.Context) error
}
