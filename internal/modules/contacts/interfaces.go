package contacts

import (
	"context"

	"contactagenda/internal/domain"
	"contactagenda/internal/repository"
)

// ContactRepositoryInterface covers only the methods the contacts service uses.
type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *domain.Contact) error
	Update(ctx context.Context, c *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context) ([]repository.ContactListRow, error)
	Delete(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
}
