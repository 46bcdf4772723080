package allocation

import "context"

// CounterStore provides atomic per-scope sequence issuance. AllocateNext
// must initialize a brand-new scope at start and return it, and must
// increment atomically for every later call on the same key.
type CounterStore interface {
	AllocateNext(ctx context.Context, key ScopeKey, start int) (int, error)
}

// SettingsReader supplies the tenant's configured number prefix, if any.
type SettingsReader interface {
	NumberPrefix(ctx context.Context, tenantID string) (string, bool, error)
}

// NumberProbe reports whether a formatted number is already taken. It is
// supplied by the project-metadata owner and is optional.
type NumberProbe interface {
	Exists(ctx context.Context, number string) (bool, error)
}
