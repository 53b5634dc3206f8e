package repository

import "errors"

// This file defines the errors of the repository layer. Services translate
// them into domain errors (app_errors) so handlers never see storage details.

// ErrNotFound is returned when no session exists for the given ID.
var ErrNotFound = errors.New("repository: not found")

// ErrExists is returned when creating a session whose ID is already taken.
var ErrExists = errors.New("repository: already exists")
