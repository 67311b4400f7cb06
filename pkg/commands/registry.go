package commands

import (
	command "github.com/goliatone/go-command"

	internalcommands "github.com/goliatone/go-localesync/internal/commands"
	"github.com/goliatone/go-localesync/internal/pull"
	"github.com/goliatone/go-localesync/internal/sync"
	"github.com/goliatone/go-localesync/internal/verify"
	"github.com/goliatone/go-localesync/pkg/interfaces/logger"
)

// Re-export request types so consumers need not import internal packages.
type (
	SyncMessages   = internalcommands.SyncMessages
	PullAssets     = internalcommands.PullAssets
	VerifyCatalogs = internalcommands.VerifyCatalogs
)

// Registry exposes go-command compatible handlers backed by the batch
// services.
type Registry struct {
	Catalog        *internalcommands.Catalog
	SyncMessages   command.Commander[SyncMessages]
	PullAssets     command.Commander[PullAssets]
	VerifyCatalogs command.Commander[VerifyCatalogs]
}

// Dependencies mirror the internal command dependencies but keep them public.
type Dependencies struct {
	Sync   *sync.Service
	Pull   *pull.Service
	Verify *verify.Service
	Logger logger.Logger
}

// New builds the registry using the provided dependencies.
func New(deps Dependencies) (*Registry, error) {
	catalog, err := internalcommands.NewCatalog(internalcommands.Dependencies{
		Sync:   deps.Sync,
		Pull:   deps.Pull,
		Verify: deps.Verify,
		Logger: deps.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Registry{
		Catalog:        catalog,
		SyncMessages:   catalog.SyncMessages,
		PullAssets:     catalog.PullAssets,
		VerifyCatalogs: catalog.VerifyCatalogs,
	}, nil
}

// Commanders returns every handler so callers can register them with
// go-command registries.
func (r *Registry) Commanders() []any {
	if r == nil {
		return nil
	}
	return []any{
		r.SyncMessages,
		r.PullAssets,
		r.VerifyCatalogs,
	}
}
