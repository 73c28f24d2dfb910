package matching

import "errors"

var (
	// ErrCatalogMissing means the engine was built without a catalog.
	ErrCatalogMissing = errors.New("platform catalog not configured")
	// ErrEngineMissing means the service was built without an engine.
	ErrEngineMissing = errors.New("matching engine not configured")
)
