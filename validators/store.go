package validators

import (
	"context"

	"magpie/types"
	"magpie/verify"
)

// Record is the slice of a stored entity the chain needs to decide
// admission
type Record struct {
	ID       string
	ClientID string
	State    types.EntityState
	Flags    types.EntityFlags
}

// Store is the lookup surface the chain runs against. All methods report
// absence with a nil result and a nil error; a non-nil error always means
// the store itself failed.
type Store interface {
	// Record fetches the stored entity for targetType ("bot"/"server")
	Record(ctx context.Context, targetType, id string) (*Record, error)

	// ResolveVanity resolves a vanity code to its target, case-insensitively
	ResolveVanity(ctx context.Context, code string) (targetType, targetID string, err error)

	// User resolves a user or bot snowflake to its canonical record
	User(ctx context.Context, id string) (*types.PlatformUser, error)

	// Tags returns the current global tag vocabulary
	Tags(ctx context.Context) ([]types.Tag, error)

	// Features returns the current global feature vocabulary
	Features(ctx context.Context) ([]types.Feature, error)
}

// Deps is everything a check chain consumes. Fakes slot in for tests; main
// wires the pgx store and the live HTTP verifiers.
type Deps struct {
	Store  Store
	Apps   verify.ApplicationLookup
	Banner verify.ImageProbe
}
