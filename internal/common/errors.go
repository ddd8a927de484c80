// Package common defines shared constants and sentinel errors used by
// repositories, services and HTTP handlers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorValidation      = errors.New("validation error")
	ErrorUnauthenticated = errors.New("unauthenticated")
	ErrorForbidden       = errors.New("forbidden")
	ErrorPayloadTooLarge = errors.New("payload too large")

	// Backend failures. ErrorStore is the record store, ErrorStorage the
	// blob store.
	ErrorStore   = errors.New("record store error")
	ErrorStorage = errors.New("blob storage error")

	// Two-phase operations left in a mixed state.
	ErrorOrphanedBlob  = errors.New("blob stored without a matching record")
	ErrorPartialDelete = errors.New("blob deleted but record remains")

	// Login failures. Each one gets its own message on the login page.
	ErrorNoUsers           = errors.New("no users found")
	ErrorUserNotFound      = errors.New("user not found")
	ErrorPasswordIncorrect = errors.New("password incorrect")
)
