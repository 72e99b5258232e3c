// Package repository is the gorm-backed record store. Every cross-record
// link is a weak reference, resolved here through Resolve and ResolveAll.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/kendall-kelly/lightwork-auth-api/models"
	"github.com/kendall-kelly/lightwork-auth-api/utils"
	"gorm.io/gorm"
)

// Store wraps a *gorm.DB. A Store built inside Transaction is bound to the
// transaction.
type Store struct {
	db *gorm.DB
}

// New returns a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn with a Store bound to a single database transaction.
// Any error returned by fn rolls the whole unit back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Migrate creates or updates every table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(models.AllModels()...)
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// ErrEmptyRef is returned when resolving a reference with no id.
var ErrEmptyRef = errors.New("empty reference")

// DanglingRefError is returned when a reference points at nothing.
type DanglingRefError struct {
	Ref models.Ref
}

func (e *DanglingRefError) Error() string {
	return fmt.Sprintf("dangling reference %s", e.Ref)
}

// IsDangling reports whether err is a DanglingRefError.
func IsDangling(err error) bool {
	var d *DanglingRefError
	return errors.As(err, &d)
}

// Resolver dereferences typed weak references.
type Resolver interface {
	Resolve(ctx context.Context, ref models.Ref, dst any) error
}

var knownCollections = map[string]bool{
	models.CollectionUsers:                  true,
	models.CollectionUserProfiles:           true,
	models.CollectionAddresses:              true,
	models.CollectionCompanies:              true,
	models.CollectionCompanyCategories:      true,
	models.CollectionRoles:                  true,
	models.CollectionPermissions:            true,
	models.CollectionUserRoles:              true,
	models.CollectionTaxInformation:         true,
	models.CollectionUserPrompts:            true,
	models.CollectionUserPromptMessages:     true,
	models.CollectionCategoryPrompts:        true,
	models.CollectionCategoryPromptMessages: true,
	models.CollectionUsersActivity:          true,
	models.CollectionProperties:             true,
	models.CollectionTenancyContracts:       true,
	models.CollectionBuildings:              true,
	models.CollectionUserProperties:         true,
	models.CollectionJobs:                   true,
}

// Resolve loads the record ref points at into dst.
func (s *Store) Resolve(ctx context.Context, ref models.Ref, dst any) error {
	if ref.IsZero() {
		return ErrEmptyRef
	}
	if !knownCollections[ref.Collection] {
		return fmt.Errorf("unknown collection %q", ref.Collection)
	}
	err := s.conn(ctx).Table(ref.Collection).Where("id = ?", ref.ID).Take(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &DanglingRefError{Ref: ref}
	}
	return err
}

// ResolveAll loads every record refs point at, preserving ref order and
// skipping duplicates. Refs that match nothing are returned as dangling.
func ResolveAll[T any](ctx context.Context, s *Store, refs []models.Ref, idOf func(T) string) ([]T, []models.Ref, error) {
	if len(refs) == 0 {
		return []T{}, nil, nil
	}
	collection := refs[0].Collection
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		if r.Collection != collection {
			return nil, nil, fmt.Errorf("mixed collections %q and %q", collection, r.Collection)
		}
		if !r.IsZero() {
			ids = append(ids, r.ID)
		}
	}
	if !knownCollections[collection] {
		return nil, nil, fmt.Errorf("unknown collection %q", collection)
	}

	var rows []T
	if len(ids) > 0 {
		if err := s.conn(ctx).Table(collection).Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, nil, err
		}
	}

	byID := make(map[string]T, len(rows))
	for _, row := range rows {
		byID[idOf(row)] = row
	}
	out := make([]T, 0, len(rows))
	var dangling []models.Ref
	seen := make(map[string]bool, len(refs))
	for _, r := range refs {
		if r.IsZero() || seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		if row, ok := byID[r.ID]; ok {
			out = append(out, row)
		} else {
			dangling = append(dangling, r)
		}
	}
	return out, dangling, nil
}

// patcher is implemented by every *Patch model type.
type patcher[T any] interface {
	Apply(*T) []string
}

func findByID[T any](ctx context.Context, db *gorm.DB, id, notFound string) (*T, error) {
	var row T
	err := db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound(notFound)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func findOne[T any](ctx context.Context, db *gorm.DB, notFound string, query any, args ...any) (*T, error) {
	var row T
	err := db.WithContext(ctx).Where(query, args...).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound(notFound)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func updateWith[T any, P patcher[T]](ctx context.Context, db *gorm.DB, row *T, patch P) (*T, error) {
	cols := patch.Apply(row)
	if len(cols) == 0 {
		return row, nil
	}
	if err := db.WithContext(ctx).Model(row).Select(cols).Updates(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func updateByID[T any, P patcher[T]](ctx context.Context, db *gorm.DB, id string, patch P, notFound string) (*T, error) {
	row, err := findByID[T](ctx, db, id, notFound)
	if err != nil {
		return nil, err
	}
	return updateWith[T](ctx, db, row, patch)
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id, notFound string) error {
	var row T
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(notFound)
	}
	return nil
}

func notDeleted(db *gorm.DB, include bool) *gorm.DB {
	if include {
		return db
	}
	return db.Where("deleted_at IS NULL")
}

func notFound(message string) error {
	return utils.NotFound(message)
}
