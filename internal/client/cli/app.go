// Package cli is the console surface of the admin client: a REPL with one
// command set per panel, interactive field prompts, and confirmations for
// destructive operations. It owns no protocol or reconciliation logic;
// all of that lives in the api, forms, panels and feedback packages.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/api"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/config"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/feedback"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/models"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/panels"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/repositories/state"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/services"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/session"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/logging"
)

// App wires the whole console together. Exactly one Session Store exists
// per App and is handed to every dependent explicitly.
type App struct {
	config     *config.Config
	logger     logging.Logger
	reader     *bufio.Reader
	out        io.Writer
	db         *sql.DB
	sessions   *session.Store
	client     *api.Client
	sessionSvc *services.SessionService
	feedback   *feedback.Coordinator

	vehicles   *services.Catalog[models.Vehicle]
	insurances *services.Catalog[models.VehicleInsurance]
	customers  *api.Resource[models.Customer]
}

// NewApp opens the local state database and wires the full dependency graph
// against stdin/stdout.
func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := state.Open(ctx, cfg.StateDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing state database", "error", err)
		return nil, err
	}

	repo := state.NewSQLiteRepository(db)
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	a := newApp(cfg, logger, os.Stdin, os.Stdout, repo, httpClient)
	a.db = db
	return a, nil
}

// newApp is the wiring core, separated so tests can inject reader, writer,
// repository and HTTP client.
func newApp(cfg *config.Config, logger logging.Logger, in io.Reader, out io.Writer, repo state.Repository, httpClient *http.Client) *App {
	sessions := session.NewStore()
	client := api.New(cfg.BaseURL, httpClient, sessions, logger)

	// One buffered reader for both field prompts and confirmations, so
	// buffered input is never split between two readers.
	reader := bufio.NewReader(in)

	vehiclesRes := api.NewResource[models.Vehicle](client, api.ResourceSpec{
		Name:       "vehicles",
		Path:       "/vehicles",
		PublicList: true,
	})
	insurancesRes := api.NewResource[models.VehicleInsurance](client, api.ResourceSpec{
		Name: "vehicle_insurances",
		Path: "/vehicle_insurances",
	})
	customersRes := api.NewResource[models.Customer](client, api.ResourceSpec{
		Name:         "customers",
		Path:         "/customers",
		PublicCreate: true,
	})

	return &App{
		config:     cfg,
		logger:     logger,
		reader:     reader,
		out:        out,
		sessions:   sessions,
		client:     client,
		sessionSvc: services.NewSessionService(client, sessions, repo, logger),
		feedback:   feedback.NewCoordinator(reader, out, logger),
		vehicles:   services.NewCatalog(panels.NewPanel(vehiclesRes, logger), repo, "vehicles", logger),
		insurances: services.NewCatalog(panels.NewPanel(insurancesRes, logger), repo, "vehicle_insurances", logger),
		customers:  customersRes,
	}
}

// Run restores any persisted session and enters the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	restored, err := a.sessionSvc.Restore(ctx)
	if err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err)
	}
	if restored {
		if name, _, err := a.sessionSvc.Whoami(); err == nil {
			fmt.Fprintln(a.out, "Welcome back, "+name)
		}
	}

	a.Root(ctx)
}

// Close releases held resources.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsAuthenticated()
}
