package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Predefined role names. Created by cmd/seed, immutable afterwards.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
	RoleGuest = "Guest"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type User struct {
	ID           string     `json:"id" gorm:"type:uuid;primaryKey"`
	Username     string     `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	FullName     string     `json:"full_name" gorm:"size:100;not null"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// NewUser builds an active user with normalized (lowercase) username and
// email. Validation happens here so no repository ever sees an invalid user.
func NewUser(username, email, passwordHash, fullName string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	fullName = strings.TrimSpace(fullName)

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validateFullName(fullName); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, &ValidationError{Field: "password", Message: "password hash cannot be empty"}
	}

	return &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (u *User) Rename(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if err := validateFullName(fullName); err != nil {
		return err
	}
	u.FullName = fullName
	u.touch()
	return nil
}

func (u *User) Deactivate() {
	u.IsActive = false
	u.touch()
}

func (u *User) Activate() {
	u.IsActive = true
	u.touch()
}

func (u *User) ChangePassword(newPasswordHash string) error {
	if newPasswordHash == "" {
		return &ValidationError{Field: "password", Message: "password hash cannot be empty"}
	}
	u.PasswordHash = newPasswordHash
	u.touch()
	return nil
}

func (u *User) touch() {
	now := time.Now().UTC()
	u.UpdatedAt = &now
}

func validateUsername(username string) error {
	switch {
	case username == "":
		return &ValidationError{Field: "username", Message: "username cannot be empty"}
	case len(username) < 3:
		return &ValidationError{Field: "username", Message: "username must be at least 3 characters long"}
	case len(username) > 50:
		return &ValidationError{Field: "username", Message: "username cannot exceed 50 characters"}
	case !usernameRegex.MatchString(username):
		return &ValidationError{Field: "username", Message: "username can only contain letters, numbers, dots, hyphens and underscores"}
	}
	return nil
}

// ValidateEmail checks format and length. Shared with Contact.
func ValidateEmail(email string) error {
	switch {
	case email == "":
		return &ValidationError{Field: "email", Message: "email cannot be empty"}
	case !emailRegex.MatchString(email):
		return &ValidationError{Field: "email", Message: "invalid email format"}
	case len(email) > 254:
		return &ValidationError{Field: "email", Message: "email is too long (max 254 characters)"}
	}
	return nil
}

func validateFullName(fullName string) error {
	switch {
	case fullName == "":
		return &ValidationError{Field: "full_name", Message: "full name cannot be empty"}
	case len(fullName) < 3:
		return &ValidationError{Field: "full_name", Message: "full name must be at least 3 characters long"}
	case len(fullName) > 100:
		return &ValidationError{Field: "full_name", Message: "full name cannot exceed 100 characters"}
	}
	return nil
}

type Role struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"size:50;uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewRole(name, description string) (*Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "role name cannot be empty"}
	}
	if len(name) > 50 {
		return nil, &ValidationError{Field: "name", Message: "role name cannot exceed 50 characters"}
	}
	return &Role{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// UserRole links a user to a role.
type UserRole struct {
	UserID     string    `json:"user_id" gorm:"type:uuid;primaryKey"`
	RoleID     string    `json:"role_id" gorm:"type:uuid;primaryKey"`
	AssignedAt time.Time `json:"assigned_at"`
}

func NewUserRole(userID, roleID string) (*UserRole, error) {
	if userID == "" {
		return nil, &ValidationError{Field: "user_id", Message: "user id cannot be empty"}
	}
	if roleID == "" {
		return nil, &ValidationError{Field: "role_id", Message: "role id cannot be empty"}
	}
	return &UserRole{
		UserID:     userID,
		RoleID:     roleID,
		AssignedAt: time.Now().UTC(),
	}, nil
}
