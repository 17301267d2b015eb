package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lostfound/internal/models"
	"lostfound/internal/repository"
)

// recentLimit caps the cross-user listing on the dashboard.
const recentLimit = 12

// RegistryService handles item reports: creation, listing, stats and the
// owner-gated mutations.
type RegistryService struct {
	items  repository.Items
	images ImageStore
}

func NewRegistryService(items repository.Items, images ImageStore) *RegistryService {
	return &RegistryService{items: items, images: images}
}

var _ Registry = (*RegistryService)(nil)

// Create validates the report, stores the optional image, and persists the
// item with date_reported set now. The image file is written before the row
// insert and removed again if the insert fails, so neither side is left
// dangling.
func (s *RegistryService) Create(ctx context.Context, p CreateItemParams) (int, error) {
	if strings.TrimSpace(p.Title) == "" ||
		strings.TrimSpace(p.Location) == "" ||
		strings.TrimSpace(p.Description) == "" {
		return 0, ErrInvalidInput
	}
	if !models.ValidType(p.Type) {
		return 0, ErrInvalidInput
	}

	var image string
	if p.Image != nil {
		name, err := s.images.Save(p.Image)
		if err != nil {
			return 0, fmt.Errorf("store image: %w", err)
		}
		image = name
	}

	id, err := s.items.Create(ctx, models.Item{
		Title:        p.Title,
		Description:  p.Description,
		Type:         p.Type,
		Location:     p.Location,
		Image:        image,
		DateReported: time.Now().UTC(),
		IsResolved:   false,
		UserID:       p.OwnerID,
	})
	if err != nil {
		if image != "" {
			_ = s.images.Remove(image)
		}
		return 0, err
	}
	return id, nil
}

// ListMine returns the requester's own reports, newest first.
func (s *RegistryService) ListMine(ctx context.Context, ownerID int) ([]models.Item, error) {
	return s.items.ListByOwner(ctx, ownerID)
}

// ListRecent returns the newest reports across all users.
func (s *RegistryService) ListRecent(ctx context.Context) ([]models.Item, error) {
	return s.items.ListRecent(ctx, recentLimit)
}

// Stats returns the dashboard aggregate counts for the requester.
func (s *RegistryService) Stats(ctx context.Context, requesterID int) (models.Stats, error) {
	return s.items.Stats(ctx, requesterID)
}

// Get returns the item or ErrNotFound.
func (s *RegistryService) Get(ctx context.Context, id int) (*models.Item, error) {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrNotFound
	}
	return it, nil
}

// ToggleResolved flips is_resolved and returns the new value. Only the owner
// may toggle.
func (s *RegistryService) ToggleResolved(ctx context.Context, id, requesterID int) (bool, error) {
	it, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if !it.OwnedBy(requesterID) {
		return false, ErrForbidden
	}

	next := !it.IsResolved
	if err := s.items.SetResolved(ctx, id, next); err != nil {
		return false, err
	}
	return next, nil
}

// Delete removes the item permanently, then its stored image. Only the owner
// may delete.
func (s *RegistryService) Delete(ctx context.Context, id, requesterID int) error {
	it, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !it.OwnedBy(requesterID) {
		return ErrForbidden
	}

	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	if it.Image != "" {
		// best effort: the row is already gone
		_ = s.images.Remove(it.Image)
	}
	return nil
}
