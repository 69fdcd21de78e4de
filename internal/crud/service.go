// Package crud is the generic data service behind the portfolio sections.
// Records are schemaless JSON documents grouped into named collections;
// every document carries "_id", "_createdDate" and "_updatedDate".
package crud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/Zachkp/portfolio/internal/loader"
)

const (
	FieldID          = "_id"
	FieldCreatedDate = "_createdDate"
	FieldUpdatedDate = "_updatedDate"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrConflict          = errors.New("record already exists")
	ErrInvalidCollection = errors.New("invalid collection name")
)

var collectionPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

// ValidateCollection rejects names that are empty or not a lowercase slug.
func ValidateCollection(name string) error {
	if !collectionPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, name)
	}
	return nil
}

// Document is one record as stored by the data service.
type Document map[string]any

// ID returns the document's "_id", or "" if unset.
func (d Document) ID() string {
	id, _ := d[FieldID].(string)
	return id
}

// fields returns a copy without the service-managed keys.
func (d Document) fields() Document {
	out := make(Document, len(d))
	for k, v := range d {
		switch k {
		case FieldID, FieldCreatedDate, FieldUpdatedDate:
			continue
		}
		out[k] = v
	}
	return out
}

// Result is the listing returned by GetAll. Items keep the backend order.
type Result struct {
	Items      []Document `json:"items"`
	TotalCount int        `json:"totalCount"`
}

// Reader is the read side of the data service.
type Reader interface {
	GetAll(ctx context.Context, collection string) (*Result, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Collections(ctx context.Context) ([]string, error)
}

// Service is the full CRUD contract.
type Service interface {
	Reader
	Create(ctx context.Context, collection string, doc Document) (Document, error)
	Update(ctx context.Context, collection string, doc Document) (Document, error)
	Delete(ctx context.Context, collection, id string) error
}

// GetAll lists a collection and decodes every document into T. Documents
// that do not decode are left out and logged through slog's default logger,
// so one odd record never takes the whole listing down.
func GetAll[T any](ctx context.Context, r Reader, collection string) ([]T, error) {
	res, err := r.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	items, skipped := DecodeAll[T](res.Items)
	for _, sk := range skipped {
		slog.Default().WarnContext(ctx, "record skipped",
			"collection", collection, "id", sk.ID, "index", sk.Index, "error", sk.Err)
	}
	return items, nil
}

// Skipped describes a document DecodeAll could not convert.
type Skipped struct {
	Index int
	ID    string
	Err   error
}

// DecodeAll converts documents to typed records one at a time, preserving
// order. The result is never nil.
func DecodeAll[T any](docs []Document) ([]T, []Skipped) {
	out := make([]T, 0, len(docs))
	var skipped []Skipped
	for i, doc := range docs {
		v, err := decode[T](doc)
		if err != nil {
			skipped = append(skipped, Skipped{Index: i, ID: doc.ID(), Err: err})
			continue
		}
		out = append(out, v)
	}
	return out, skipped
}

func decode[T any](doc Document) (T, error) {
	var v T
	raw, err := json.Marshal(doc)
	if err != nil {
		return v, err
	}
	err = json.Unmarshal(raw, &v)
	return v, err
}

// Encode converts a typed record into a document.
func Encode(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Fetcher adapts a Reader into the fetch capability a loader consumes.
func Fetcher[T any](r Reader) loader.FetchFunc[T] {
	return func(ctx context.Context, collection string) ([]T, error) {
		return GetAll[T](ctx, r, collection)
	}
}
