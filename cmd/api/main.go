package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/joho/godotenv"

	"github.com/weddingledger/planner/internal/auth"
	"github.com/weddingledger/planner/internal/category"
	categoryStore "github.com/weddingledger/planner/internal/category/store"
	"github.com/weddingledger/planner/internal/cleanup"
	cleanupStore "github.com/weddingledger/planner/internal/cleanup/store"
	"github.com/weddingledger/planner/internal/config"
	"github.com/weddingledger/planner/internal/contributor"
	contributorStore "github.com/weddingledger/planner/internal/contributor/store"
	"github.com/weddingledger/planner/internal/database"
	"github.com/weddingledger/planner/internal/expense"
	expenseStore "github.com/weddingledger/planner/internal/expense/store"
	"github.com/weddingledger/planner/internal/export"
	"github.com/weddingledger/planner/internal/gift"
	giftStore "github.com/weddingledger/planner/internal/gift/store"
	plannerHttp "github.com/weddingledger/planner/internal/http"
	categoryHandler "github.com/weddingledger/planner/internal/http/category"
	contributorHandler "github.com/weddingledger/planner/internal/http/contributor"
	expenseHandler "github.com/weddingledger/planner/internal/http/expense"
	exportHandler "github.com/weddingledger/planner/internal/http/export"
	giftHandler "github.com/weddingledger/planner/internal/http/gift"
	invitationHandler "github.com/weddingledger/planner/internal/http/invitation"
	ledgerHandler "github.com/weddingledger/planner/internal/http/ledger"
	migrationHandler "github.com/weddingledger/planner/internal/http/migration"
	notificationHandler "github.com/weddingledger/planner/internal/http/notification"
	preferenceHandler "github.com/weddingledger/planner/internal/http/preference"
	settingsHandler "github.com/weddingledger/planner/internal/http/settings"
	workspaceHandler "github.com/weddingledger/planner/internal/http/workspace"
	"github.com/weddingledger/planner/internal/importer"
	"github.com/weddingledger/planner/internal/invitation"
	invitationStore "github.com/weddingledger/planner/internal/invitation/store"
	"github.com/weddingledger/planner/internal/ledger"
	"github.com/weddingledger/planner/internal/live"
	"github.com/weddingledger/planner/internal/mail"
	"github.com/weddingledger/planner/internal/migration"
	migrationStore "github.com/weddingledger/planner/internal/migration/store"
	"github.com/weddingledger/planner/internal/notification"
	notificationStore "github.com/weddingledger/planner/internal/notification/store"
	"github.com/weddingledger/planner/internal/preference"
	preferenceStore "github.com/weddingledger/planner/internal/preference/store"
	"github.com/weddingledger/planner/internal/settings"
	settingsStore "github.com/weddingledger/planner/internal/settings/store"
	"github.com/weddingledger/planner/internal/workspace"
	workspaceStore "github.com/weddingledger/planner/internal/workspace/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := database.Options(cfg.Firestore.CredentialsFile)

	db, err := database.New(ctx, cfg.Firestore.ProjectID, opts...)
	if err != nil {
		slog.Error("failed to connect to firestore", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		slog.Error("failed to set up authentication", "error", err)
		os.Exit(1)
	}

	mailer, err := newMailer(ctx, cfg)
	if err != nil {
		slog.Error("failed to set up mailer", "error", err)
		os.Exit(1)
	}

	var archiver export.Archiver

	if cfg.Export.Bucket != "" {
		gcs, err := storage.NewClient(ctx, opts...)
		if err != nil {
			slog.Error("failed to create storage client", "error", err)
			os.Exit(1)
		}
		defer gcs.Close()

		archiver = export.NewGCSArchiver(gcs, cfg.Export.Bucket)
	}

	policy := live.Policy{
		BaseDelay:    cfg.Listener.BaseDelay,
		MaxDelay:     cfg.Listener.MaxDelay,
		MaxAttempts:  cfg.Listener.MaxAttempts,
		HealthyAfter: time.Minute,
	}

	var (
		workspaceService    = workspace.NewService(workspaceStore.New(db), workspace.WithWatch(cfg.Listener.Debounce, policy))
		invitationService   = invitation.NewService(invitationStore.New(db), mailer, cfg.App.BaseURL, invitation.WithTTL(cfg.Invitation.TTL))
		contributorService  = contributor.NewService(contributorStore.New(db))
		expenseService      = expense.NewService(expenseStore.New(db), contributorService)
		giftService         = gift.NewService(giftStore.New(db), contributorService, expenseService)
		categoryService     = category.NewService(categoryStore.New(db))
		settingsService     = settings.NewService(settingsStore.New(db))
		ledgerService       = ledger.NewService(expenseService, contributorService, giftService, settingsService)
		importService       = importer.NewService(contributorService, giftService)
		exportService       = export.NewService(ledgerService, archiver)
		notificationService = notification.NewService(notificationStore.New(db))
		preferenceService   = preference.NewService(preferenceStore.New(db), workspaceService)
		migrationService    = migration.NewService(migrationStore.New(db))
		cleanupService      = cleanup.NewService(cleanupStore.New(db), cfg.Cleanup.BatchSize)
	)

	giftH := giftHandler.NewHandler(giftService, ledgerService, importService)

	handlers := plannerHttp.Handlers{
		Workspaces:    workspaceHandler.NewHandler(workspaceService),
		Invitations:   invitationHandler.NewHandler(invitationService),
		Expenses:      expenseHandler.NewHandler(expenseService, ledgerService),
		Contributors:  contributorHandler.NewHandler(contributorService, ledgerService, giftH),
		Gifts:         giftH,
		Categories:    categoryHandler.NewHandler(categoryService),
		Settings:      settingsHandler.NewHandler(settingsService),
		Summary:       ledgerHandler.NewHandler(ledgerService),
		Export:        exportHandler.NewHandler(exportService),
		Notifications: notificationHandler.NewHandler(notificationService),
		Preferences:   preferenceHandler.NewHandler(preferenceService),
		Migration:     migrationHandler.NewHandler(migrationService),
	}

	router := plannerHttp.New(plannerHttp.Options{
		Verifier:       verifier,
		Access:         workspaceService,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, handlers)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		// Writes stay unbounded for the workspace event stream.
		IdleTimeout: 2 * cfg.Server.Timeout,
	}

	go cleanupService.Run(ctx, cfg.Cleanup.Interval)

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "auth", cfg.Auth.Mode)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}

	invitationService.Wait()
}

func newVerifier(ctx context.Context, cfg *config.Config) (auth.Verifier, error) {
	if cfg.Auth.Mode == config.AuthJWT {
		return auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer), nil
	}

	client, err := database.Auth(ctx, cfg.Firestore.ProjectID, database.Options(cfg.Firestore.CredentialsFile)...)
	if err != nil {
		return nil, err
	}

	return auth.NewFirebaseVerifier(client), nil
}

// newMailer returns the SendGrid mailer, or a mailer that only logs when no
// API key is configured.
func newMailer(ctx context.Context, cfg *config.Config) (invitation.Mailer, error) {
	key, err := cfg.SendGridKey(ctx, database.Options(cfg.Firestore.CredentialsFile)...)
	if err != nil {
		return nil, err
	}

	if key == "" {
		slog.Warn("SendGrid is not configured; invitation emails will only be logged")
		return mail.LogMailer{}, nil
	}

	return mail.NewSendGridClient(key, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, cfg.SendGrid.TemplateID), nil
}
