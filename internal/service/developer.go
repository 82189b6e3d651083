package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"devapi/internal/model"
	"devapi/internal/repository"
)

var ErrNotFound = errors.New("developer not found")

// DeveloperInput carries the writable fields of a developer.
// A nil field is persisted as null; there is no partial update.
type DeveloperInput struct {
	Name    *string `json:"name" form:"name"`
	FavLang *string `json:"fav_lang" form:"fav_lang"`
}

// DeveloperService defines the use cases for handling developers.
// Every operation addressing an ID resolves the record first and returns
// ErrNotFound before any mutation when it does not exist.
type DeveloperService interface {
	// List returns every stored developer in insertion order.
	List(ctx context.Context) ([]model.Developer, error)

	// Create stores a new developer.
	Create(ctx context.Context, in DeveloperInput) (*model.Developer, error)

	// Get returns a single developer by its ID.
	Get(ctx context.Context, id int64) (*model.Developer, error)

	// Update overwrites name and fav_lang of an existing developer.
	Update(ctx context.Context, id int64, in DeveloperInput) (*model.Developer, error)

	// Delete removes a developer by ID.
	Delete(ctx context.Context, id int64) error
}

type developerService struct {
	repo repository.DeveloperRepository
	now  func() time.Time
}

// NewDeveloperService constructs a new DeveloperService.
func NewDeveloperService(repo repository.DeveloperRepository) DeveloperService {
	return &developerService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *developerService) List(ctx context.Context) ([]model.Developer, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list developers: %w", err)
	}
	return items, nil
}

func (s *developerService) Create(ctx context.Context, in DeveloperInput) (*model.Developer, error) {
	now := s.now()
	dev := &model.Developer{
		Name:      in.Name,
		FavLang:   in.FavLang,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.repo.Create(ctx, dev)
	if err != nil {
		return nil, fmt.Errorf("create developer: %w", err)
	}
	return stored, nil
}

func (s *developerService) Get(ctx context.Context, id int64) (*model.Developer, error) {
	dev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find developer %d: %w", id, err)
	}
	return dev, nil
}

func (s *developerService) Update(ctx context.Context, id int64, in DeveloperInput) (*model.Developer, error) {
	dev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	dev.Name = in.Name
	dev.FavLang = in.FavLang
	dev.UpdatedAt = s.now()

	stored, err := s.repo.Update(ctx, dev)
	if err != nil {
		// The row can disappear between the lookup and the write.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update developer %d: %w", id, err)
	}
	return stored, nil
}

func (s *developerService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete developer %d: %w", id, err)
	}
	return nil
}
