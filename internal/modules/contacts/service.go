package contacts

import (
	"context"
	"errors"

	"contactagenda/internal/domain"
	"contactagenda/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	contacts ContactRepositoryInterface
}

func NewService(contacts ContactRepositoryInterface) *Service {
	return &Service{contacts: contacts}
}

func (s *Service) Create(ctx context.Context, req CreateContactRequest) (*domain.Contact, error) {
	contact, err := domain.NewContact(req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	if exists, err := s.contacts.ExistsByEmail(ctx, contact.Email, ""); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrDuplicateEmail
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return contact, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateContactRequest) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}

	if err := contact.Update(req.Name, req.Email, req.Phone); err != nil {
		return nil, err
	}

	if exists, err := s.contacts.ExistsByEmail(ctx, contact.Email, contact.ID); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrDuplicateEmail
	}

	if err := s.contacts.Update(ctx, contact); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return contact, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

func (s *Service) List(ctx context.Context) ([]repository.ContactListRow, error) {
	return s.contacts.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.contacts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrContactNotFound
	}
	return nil
}
