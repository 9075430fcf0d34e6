package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/brevio-cli/internal/adapters/gateway"
	"github.com/bnema/brevio-cli/internal/adapters/logging"
	"github.com/bnema/brevio-cli/internal/adapters/notify"
	tomlrepo "github.com/bnema/brevio-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/brevio-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/brevio-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/brevio-cli/internal/adapters/secrets/pass"
	"github.com/bnema/brevio-cli/internal/application"
	"github.com/bnema/brevio-cli/internal/config"
	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/bnema/brevio-cli/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	cfg        config.Config
	logger     *zap.Logger
	stderr     io.Writer
	workspace  ports.WorkspaceRepository
	session    *application.SessionService
	catalog    *application.CatalogService
	selection  *application.SelectionService
	panels     *application.PanelService
	submission *application.SubmissionService
	auth       *application.AuthService
}

type wireOptions struct {
	Debug  bool
	Stderr io.Writer
}

func (a *app) wire(ctx context.Context, opts wireOptions) error {
	v := viper.New()
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	// Failures already reach the user as notifications; console logs are for
	// --debug only.
	stderr := &lockedWriter{w: opts.Stderr}
	var console io.Writer
	if opts.Debug {
		console = stderr
	}
	logger, err := logging.New(logging.Options{FilePath: cfg.LogPath, Console: console, Debug: opts.Debug})
	if err != nil {
		return fmt.Errorf("wire logger: %w", err)
	}

	notifier := notify.NewTerminal(stderr, 0)
	client := gateway.NewClient(gateway.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
	}, notifier, gateway.WithLogger(logger.Named("gateway")))

	store, err := newSecretStore(cfg)
	if err != nil {
		return fmt.Errorf("wire secret store: %w", err)
	}

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return fmt.Errorf("wire workspace repository: %w", err)
	}
	workspace, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load workspace: %w", err)
	}

	panels := application.NewPanelService(workspace.Panels)
	session := application.NewSessionService(store, notifier, panels, ports.SystemClock{}, logger.Named("session"))
	catalog := application.NewCatalogService(client, notifier, logger.Named("catalog"))
	selection := application.NewSelectionService(catalog, workspace.Selection, panels.ActiveVariant())
	panels.Subscribe(func(state domain.PanelState) {
		selection.SetVariant(state.ActiveVariant())
	})

	*a = app{
		cfg:        cfg,
		logger:     logger,
		stderr:     stderr,
		workspace:  repo,
		session:    session,
		catalog:    catalog,
		selection:  selection,
		panels:     panels,
		submission: application.NewSubmissionService(client, session, panels, notifier, logger.Named("submission")),
		auth:       application.NewAuthService(client, session, notifier, logger.Named("auth")),
	}

	session.Restore(ctx)
	logger.Debug("app wired", zap.String("base_url", cfg.BaseURL), zap.String("workspace", repo.Path()))
	return nil
}

func newSecretStore(cfg config.Config) (ports.SecretStore, error) {
	switch cfg.SecretsBackend {
	case config.SecretsFile:
		return filestore.NewStore(cfg.SecretsDir), nil
	case config.SecretsPass:
		return passstore.NewStore(), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(cfg.SecretsDir)
	}
}

// loadCatalog fetches every list and re-checks the stored selection against
// it.
func (a *app) loadCatalog(ctx context.Context) domain.Catalog {
	catalog := a.catalog.Load(ctx)
	if _, err := a.selection.Reconcile(); err != nil {
		a.logger.Warn("reconcile selection", zap.Error(err))
	}
	return catalog
}

func (a *app) saveWorkspace(ctx context.Context) error {
	workspace := domain.Workspace{
		Selection: a.selection.Snapshot(),
		Panels:    a.panels.State(),
	}
	if err := a.workspace.Save(ctx, workspace); err != nil {
		return fmt.Errorf("save workspace: %w", err)
	}
	return nil
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// lockedWriter serializes the spinner, the notifier and console logs on one
// stream.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
