// Package cli is the interactive shell over the notewise API client:
// note CRUD, profile and api-key management, and the per-note AI chat.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/apetrov/notewise/internal/client/api"
	"github.com/apetrov/notewise/internal/client/auth"
	"github.com/apetrov/notewise/internal/client/config"
	notesrepo "github.com/apetrov/notewise/internal/client/repositories/notes"
	"github.com/apetrov/notewise/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	log    logging.Logger

	client *api.Client
	notes  *api.NotesAPI
	user   *api.UserAPI
	tokens api.TokenSource

	db    *sql.DB
	cache notesrepo.Repository

	reader *bufio.Reader

	// selected is the note the edit/rm/chat commands operate on.
	selected *api.Note
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := notesrepo.InitDatabase(ctx, cfg.CacheFile)
	if err != nil {
		log.Error(ctx, "error initializing notes cache", "error", err)
		return nil, err
	}

	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, cfg.KeepaliveInterval, cfg.IdleThreshold, log)

	return &App{
		config: cfg,
		log:    log,
		client: client,
		notes:  api.NewNotesAPI(client),
		user:   api.NewUserAPI(client),
		tokens: auth.Cached(auth.FromFile(cfg.TokenFile)),
		db:     db,
		cache:  notesrepo.NewSQLiteRepository(db),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Main(ctx)
}

func (a *App) Close() {
	a.client.Session().Stop()
	if a.db != nil {
		_ = a.db.Close()
	}
}
