package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var nonDigitRegex = regexp.MustCompile(`\D`)

type Contact struct {
	ID        string     `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string     `json:"name" gorm:"size:100;not null"`
	Email     string     `json:"email" gorm:"size:254;uniqueIndex;not null"`
	Phone     string     `json:"phone" gorm:"size:15;not null"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func NewContact(name, email, phone string) (*Contact, error) {
	name = strings.TrimSpace(name)
	if err := validateContactName(name); err != nil {
		return nil, err
	}
	normalizedEmail, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	normalizedPhone, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	return &Contact{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     normalizedEmail,
		Phone:     normalizedPhone,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (c *Contact) Update(name, email, phone string) error {
	name = strings.TrimSpace(name)
	if err := validateContactName(name); err != nil {
		return err
	}
	normalizedEmail, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	normalizedPhone, err := NormalizePhone(phone)
	if err != nil {
		return err
	}
	c.Name = name
	c.Email = normalizedEmail
	c.Phone = normalizedPhone
	now := time.Now().UTC()
	c.UpdatedAt = &now
	return nil
}

func validateContactName(name string) error {
	switch {
	case name == "":
		return &ValidationError{Field: "name", Message: "name is required"}
	case len(name) < 3:
		return &ValidationError{Field: "name", Message: "name must have at least 3 characters"}
	case len(name) > 100:
		return &ValidationError{Field: "name", Message: "name is too long (max 100 characters)"}
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := ValidateEmail(email); err != nil {
		return "", err
	}
	return email, nil
}

// NormalizePhone strips everything but digits and enforces 8-15 digit length.
func NormalizePhone(phone string) (string, error) {
	normalized := nonDigitRegex.ReplaceAllString(strings.TrimSpace(phone), "")
	switch {
	case normalized == "":
		return "", &ValidationError{Field: "phone", Message: "phone number must contain at least one digit"}
	case len(normalized) < 8:
		return "", &ValidationError{Field: "phone", Message: "phone number is too short (min 8 digits)"}
	case len(normalized) > 15:
		return "", &ValidationError{Field: "phone", Message: "phone number is too long (max 15 digits)"}
	}
	return normalized, nil
}
