package commands

import (
	"context"
	"errors"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-localesync/internal/pull"
	"github.com/goliatone/go-localesync/internal/sync"
	"github.com/goliatone/go-localesync/internal/verify"
	"github.com/goliatone/go-localesync/pkg/interfaces/logger"
)

// Catalog exposes go-command compatible handlers for host transports.
type Catalog struct {
	SyncMessages   command.Commander[SyncMessages]
	PullAssets     command.Commander[PullAssets]
	VerifyCatalogs command.Commander[VerifyCatalogs]
}

type syncService interface {
	Run(ctx context.Context, req sync.Request) (*sync.Report, error)
}

type pullService interface {
	Run(ctx context.Context, req pull.Request) (*pull.Report, error)
}

type verifyService interface {
	Run(ctx context.Context, destDir string) (*verify.Report, error)
}

// Dependencies wires the batch services into the command catalog.
type Dependencies struct {
	Sync   syncService
	Pull   pullService
	Verify verifyService
	Logger logger.Logger
}

// NewCatalog builds the command catalog using the supplied dependencies.
func NewCatalog(deps Dependencies) (*Catalog, error) {
	if deps.Sync == nil {
		return nil, errors.New("commands: sync service is required")
	}
	if deps.Pull == nil {
		return nil, errors.New("commands: pull service is required")
	}
	if deps.Verify == nil {
		return nil, errors.New("commands: verify service is required")
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}

	return &Catalog{
		SyncMessages:   syncMessagesCommand{svc: deps.Sync},
		PullAssets:     pullAssetsCommand{svc: deps.Pull},
		VerifyCatalogs: verifyCatalogsCommand{svc: deps.Verify},
	}, nil
}

// SyncMessages requests one merge pass from an upstream messages directory
// into the platform messages root.
type SyncMessages struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

type syncMessagesCommand struct {
	svc syncService
}

func (c syncMessagesCommand) Execute(ctx context.Context, msg SyncMessages) error {
	msg.Source = strings.TrimSpace(msg.Source)
	msg.Destination = strings.TrimSpace(msg.Destination)
	if msg.Source == "" {
		return errors.New("commands: sync source is required")
	}
	if msg.Destination == "" {
		return errors.New("commands: sync destination is required")
	}
	_, err := c.svc.Run(ctx, sync.Request{SourceDir: msg.Source, DestDir: msg.Destination})
	return err
}

// PullAssets requests one asset pull into the given repository root.
type PullAssets struct {
	DestRoot string `json:"dest_root"`
}

type pullAssetsCommand struct {
	svc pullService
}

func (c pullAssetsCommand) Execute(ctx context.Context, msg PullAssets) error {
	_, err := c.svc.Run(ctx, pull.Request{DestRoot: strings.TrimSpace(msg.DestRoot)})
	return err
}

// VerifyCatalogs requests a verification pass over written bundles.
type VerifyCatalogs struct {
	Destination string `json:"destination"`
}

type verifyCatalogsCommand struct {
	svc verifyService
}

func (c verifyCatalogsCommand) Execute(ctx context.Context, msg VerifyCatalogs) error {
	msg.Destination = strings.TrimSpace(msg.Destination)
	if msg.Destination == "" {
		return errors.New("commands: verify destination is required")
	}
	_, err := c.svc.Run(ctx, msg.Destination)
	return err
}
