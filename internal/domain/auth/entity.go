package auth

import (
	"errors"
)

var (
	// ErrInvalidCredentials indicates a password that does not match the stored hash.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrEmailExists signals a duplicate email registration.
	ErrEmailExists = errors.New("user already exists")
	// ErrUserNotFound indicates missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnauthorized is the single public rejection for bearer-token checks.
	ErrUnauthorized = errors.New("could not validate credentials")
	// ErrValidation marks malformed input rejected before reaching storage.
	ErrValidation = errors.New("validation failed")
)

// Identity models a registered user as persisted in the credential store.
type Identity struct {
	UUID         string `json:"uuid" bson:"uuid"`
	FirstName    string `json:"first_name" bson:"first_name"`
	LastName     string `json:"last_name" bson:"last_name"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"password" bson:"password"`
}

// Credentials captures raw credential input for login.
type Credentials struct {
	Email    string
	Password string
}
