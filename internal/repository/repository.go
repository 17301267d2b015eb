package repository

import (
	"context"
	"database/sql"

	"lostfound/internal/models"
)

type Users interface {
	Create(ctx context.Context, name, email, passwordHash string) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id int, passwordHash string) error
}

type Items interface {
	Create(ctx context.Context, it models.Item) (int, error)
	GetByID(ctx context.Context, id int) (*models.Item, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Item, error)
	ListRecent(ctx context.Context, limit int) ([]models.Item, error)
	SetResolved(ctx context.Context, id int, resolved bool) error
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context, ownerID int) (models.Stats, error)
}

type Repository struct {
	Users Users
	Items Items
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Items: NewItemRepository(db),
	}
}
