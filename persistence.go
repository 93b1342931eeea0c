package mocforge

import (
	"context"
)

// Save commits any pending artifacts in the asset store. Import already
// saves after a successful run; Save exists for callers that stage
// additional artifacts through the store between imports.
func (imp *importer) Save(ctx context.Context) error {
	store, err := imp.Store(ctx)
	if err != nil {
		return err
	}
	return store.SaveAll(ctx)
}
