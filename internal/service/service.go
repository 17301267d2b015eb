package service

import (
	"context"
	"mime/multipart"

	"lostfound/internal/models"
	"lostfound/internal/repository"
)

// Account covers registration, credential checks, session identity
// resolution and the password-reset token flow.
type Account interface {
	Register(ctx context.Context, name, email, password string) (int, error)
	Authenticate(ctx context.Context, email, password string) (int, error)
	UserByID(ctx context.Context, id int) (*models.User, error)
	IssueResetToken(ctx context.Context, email string) (string, error)
	ConsumeResetToken(ctx context.Context, token, newPassword, confirmPassword string) error
}

// Registry covers lost/found item reports and their lifecycle.
type Registry interface {
	Create(ctx context.Context, p CreateItemParams) (int, error)
	ListMine(ctx context.Context, ownerID int) ([]models.Item, error)
	ListRecent(ctx context.Context) ([]models.Item, error)
	Stats(ctx context.Context, requesterID int) (models.Stats, error)
	Get(ctx context.Context, id int) (*models.Item, error)
	ToggleResolved(ctx context.Context, id, requesterID int) (bool, error)
	Delete(ctx context.Context, id, requesterID int) error
}

// ImageStore persists uploaded item images under stable file names.
type ImageStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(name string) error
}

// CreateItemParams carries everything needed to file a new report.
type CreateItemParams struct {
	Title       string
	Type        string // Lost | Found
	Location    string
	Description string
	Image       *multipart.FileHeader // optional upload
	OwnerID     int
}

// Service aggregates all sub-services.
type Service struct {
	Account
	Registry
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, images ImageStore, signingKey string) *Service {
	return &Service{
		Account:  NewAccountService(repos.Users, signingKey),
		Registry: NewRegistryService(repos.Items, images),
	}
}
