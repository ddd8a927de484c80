// Package models defines the records persisted by the record store.
package models

import "time"

// User is keyed by Email. PasswordHash is never serialised to JSON.
type User struct {
	ID           string    `json:"id" dynamodbav:"userId"`
	Name         string    `json:"name" dynamodbav:"name"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" dynamodbav:"createdAt"`
}

// UserUpdate lists the mutable user fields; nil means "leave as is".
type UserUpdate struct {
	Name         *string
	PasswordHash *string
}
