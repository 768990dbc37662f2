package contacts

import "errors"

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrDuplicateEmail  = errors.New("contact email already exists")
)
