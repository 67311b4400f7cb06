// Command localesync synchronizes localized message catalogs and compiled
// assets from the upstream web project into the platform resource tree.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-localesync/internal/pull"
	"github.com/goliatone/go-localesync/internal/sync"
	"github.com/goliatone/go-localesync/internal/upstream"
	"github.com/goliatone/go-localesync/internal/verify"
	"github.com/goliatone/go-localesync/pkg/commands"
	"github.com/goliatone/go-localesync/pkg/config"
	"github.com/goliatone/go-localesync/pkg/interfaces/logger"
	"github.com/goliatone/go-localesync/pkg/retry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	configFile string
	repoRoot   string
	verbose    bool
	quiet      bool

	cfg config.Config
	log logger.Logger
}

// setup loads configuration and builds the shared logger. Called from every
// subcommand's PreRunE so flag parsing has already happened.
func (a *app) setup() error {
	base := logrus.New()
	base.SetLevel(logrus.InfoLevel)
	if a.verbose {
		base.SetLevel(logrus.DebugLevel)
	}
	if a.quiet {
		base.SetLevel(logrus.WarnLevel)
	}
	a.log = logger.NewLogrus(base).With(logger.Field{Key: "run_id", Value: uuid.NewString()})

	var input any
	if a.configFile != "" {
		data, err := os.ReadFile(a.configFile)
		if err != nil {
			return fmt.Errorf("read config %s: %w", a.configFile, err)
		}
		raw := map[string]any{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse config %s: %w", a.configFile, err)
		}
		input = raw
	} else {
		input = config.Defaults()
	}

	cfg, err := config.Load(input)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	return nil
}

// registry wires the services behind the command catalog.
func (a *app) registry() (*commands.Registry, error) {
	syncSvc, err := sync.NewService(sync.Dependencies{
		Locales:    a.cfg.Table(),
		Logger:     a.log,
		BestEffort: a.cfg.Sync.BestEffort,
	})
	if err != nil {
		return nil, err
	}

	pullSvc, err := pull.NewService(pull.Dependencies{
		BaseURL: a.cfg.Pull.BaseURL,
		Stages:  pullStages(a.cfg.Pull.Stages),
		Retry:   retryPolicy(a.cfg.Pull.Retry),
		Logger:  a.log,
	})
	if err != nil {
		return nil, err
	}

	verifySvc, err := verify.NewService(verify.Dependencies{Logger: a.log})
	if err != nil {
		return nil, err
	}

	return commands.New(commands.Dependencies{
		Sync:   syncSvc,
		Pull:   pullSvc,
		Verify: verifySvc,
		Logger: a.log,
	})
}

func (a *app) messagesRoot() string {
	return filepath.Join(a.repoRoot, filepath.FromSlash(a.cfg.Destination.MessagesRoot))
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "localesync",
		Short: "Sync upstream translations and compiled assets into the platform resource tree",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "path to a YAML configuration file")
	root.PersistentFlags().StringVar(&a.repoRoot, "repo-root", ".", "repository root the destination paths are resolved against")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "only log warnings and errors")

	root.AddCommand(newSyncCmd(a))
	root.AddCommand(newPullCmd(a))
	root.AddCommand(newUpdateCmd(a))
	root.AddCommand(newVerifyCmd(a))
	return root
}

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync <path-to-upstream-checkout>",
		Short: "Merge upstream locale catalogs into the localization bundles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return fail(cmd, err)
			}
			req := commands.SyncMessages{
				Source:      filepath.Join(args[0], filepath.FromSlash(a.cfg.Source.MessagesDir)),
				Destination: a.messagesRoot(),
			}
			if err := reg.SyncMessages.Execute(cmd.Context(), req); err != nil {
				return fail(cmd, err)
			}
			return nil
		},
	}
}

func newPullCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Fetch compressed assets and mirror them into the resource folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return fail(cmd, err)
			}
			if err := reg.PullAssets.Execute(cmd.Context(), commands.PullAssets{DestRoot: a.repoRoot}); err != nil {
				return fail(cmd, err)
			}
			return nil
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Clone the upstream repository and run a sync against it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if branch == "" {
				branch = a.cfg.Upstream.Branch
			}
			cloner, err := upstream.NewCloner(upstream.Dependencies{
				URL:    a.cfg.Upstream.URL,
				Branch: branch,
				Logger: a.log,
			})
			if err != nil {
				return fail(cmd, err)
			}

			checkout, err := os.MkdirTemp("", "localesync-update-")
			if err != nil {
				return fail(cmd, fmt.Errorf("create temp checkout dir: %w", err))
			}
			defer os.RemoveAll(checkout)

			if err := cloner.Clone(cmd.Context(), checkout); err != nil {
				return fail(cmd, err)
			}

			reg, err := a.registry()
			if err != nil {
				return fail(cmd, err)
			}
			req := commands.SyncMessages{
				Source:      filepath.Join(checkout, filepath.FromSlash(a.cfg.Source.MessagesDir)),
				Destination: a.messagesRoot(),
			}
			if err := reg.SyncMessages.Execute(cmd.Context(), req); err != nil {
				return fail(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&branch, "branch", "", "upstream branch to clone (defaults to the configured branch)")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every written bundle resolves every baseline key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return fail(cmd, err)
			}
			req := commands.VerifyCatalogs{Destination: a.messagesRoot()}
			if err := reg.VerifyCatalogs.Execute(cmd.Context(), req); err != nil {
				return fail(cmd, err)
			}
			return nil
		},
	}
}

// fail marks the error as a runtime failure so cobra reports it without
// re-printing usage, which stays reserved for argument mistakes.
func fail(cmd *cobra.Command, err error) error {
	cmd.SilenceUsage = true
	return err
}

func pullStages(stages []config.PullStage) []pull.Stage {
	out := make([]pull.Stage, 0, len(stages))
	for _, stage := range stages {
		out = append(out, pull.Stage{
			Files:        stage.Files,
			Destinations: stage.Destinations,
		})
	}
	return out
}

func retryPolicy(cfg config.RetryConfig) retry.Policy {
	policy := retry.Policy{MaxAttempts: cfg.MaxAttempts}
	switch cfg.Backoff {
	case config.BackoffExponential:
		policy.Backoff = retry.ExponentialBackoff{Base: cfg.Wait, Max: cfg.MaxWait}
	default:
		policy.Backoff = retry.ConstantBackoff{Delay: cfg.Wait}
	}
	return policy
}
