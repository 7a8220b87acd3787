package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/tripkeeper/internal/client/config"
	"github.com/dmitrijs2005/tripkeeper/internal/engine"
	"github.com/dmitrijs2005/tripkeeper/internal/engine/memory"
	"github.com/dmitrijs2005/tripkeeper/internal/logging"
	"github.com/dmitrijs2005/tripkeeper/internal/models"
	"github.com/dmitrijs2005/tripkeeper/internal/snapshot"
	"github.com/dmitrijs2005/tripkeeper/internal/store"
)

// Service is the store surface the commands call. *store.Store implements it.
type Service interface {
	InsertPlan(ctx context.Context, in models.PlanInput) (*models.TravelPlan, error)
	ListPlans(ctx context.Context) ([]models.TravelPlan, error)
	DeletePlan(ctx context.Context, id int64) (bool, error)

	InsertPhoto(ctx context.Context, in models.PhotoInput) (*models.Photo, error)
	ListPhotos(ctx context.Context) ([]models.Photo, error)
	GetPhoto(ctx context.Context, id int64) (*models.Photo, error)
	UpdatePhoto(ctx context.Context, id int64, u models.PhotoUpdate) (*models.PhotoUpdateResult, error)
	DeletePhoto(ctx context.Context, id int64) (bool, error)
	DeletePhotosBatch(ctx context.Context, ids []int64) (int, error)

	GetStats(ctx context.Context) (models.Stats, error)
	ClearAll(ctx context.Context) error
	ExportSQLText(ctx context.Context) (string, error)
	ExportDatabaseFile(ctx context.Context) (*store.DatabaseFile, error)
	ImportDatabaseFile(ctx context.Context, r io.Reader) error

	Save(ctx context.Context) error
	Reload(ctx context.Context) error
}

type App struct {
	config   *config.Config
	store    Service
	shutdown func() error
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp builds the embedded adapter described by c. With c.Encrypt set it
// reads the snapshot passphrase from the terminal first.
func NewApp(c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, "text", level)

	var passphrase []byte
	if c.Encrypt {
		passphrase, err = GetPassword(os.Stderr, "Snapshot passphrase: ")
		if err != nil {
			return nil, fmt.Errorf("read passphrase: %w", err)
		}
		if len(passphrase) == 0 {
			return nil, errors.New("empty passphrase")
		}
	}

	open, err := snapshotOpener(c, passphrase)
	if err != nil {
		return nil, err
	}

	bridge := snapshot.NewBridge(c.SnapshotKey, open, logger)
	manager := engine.NewManager(memory.New(bridge, logger), logger)
	st := store.New(manager, store.Options{AutoSave: c.AutoSave, Logger: logger})

	return newApp(c, st, manager.Shutdown, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, s Service, shutdown func() error, in io.Reader, out io.Writer) *App {
	if shutdown == nil {
		shutdown = func() error { return nil }
	}
	return &App{config: c, store: s, shutdown: shutdown, reader: bufio.NewReader(in), out: out}
}

// Run restores the engine, then serves the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.shutdown(); err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}()

	fmt.Fprintln(a.out, "Welcome to tripkeeper (type 'help' for commands)")

	// touches the engine so a corrupt or unreadable snapshot is reported
	// before the first prompt
	st, err := a.store.GetStats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Loaded %d plans and %d photos\n", st.Plans, st.Photos)

	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

func (a *App) status() string {
	s := a.config.SnapshotStore
	if !a.config.AutoSave {
		s += ", manual save"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}
