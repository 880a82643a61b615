// Package idgen generates random identifiers for the NewId primitive,
// grounded on github.com/open-policy-agent/opa/internal/uuid (there
// wrapping google/uuid for the same purpose: a version-4 random UUID
// exposed to the rewriting language as a builtin value).
package idgen

import "github.com/google/uuid"

// New returns a fresh random (version 4) UUID string.
func New() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
