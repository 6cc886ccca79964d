package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/wellhub/internal/conventions"
	"github.com/slok/wellhub/internal/log"
	"github.com/slok/wellhub/internal/notify"
	"github.com/slok/wellhub/internal/printer"
	"github.com/slok/wellhub/internal/storage"
	storageio "github.com/slok/wellhub/internal/storage/io"
	"github.com/slok/wellhub/internal/storage/sqlite"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"

	formatTable = "table"
	formatJSON  = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug       bool
	NoLog       bool
	NoColor     bool
	LoggerType  string
	DBPath      string
	CatalogPath string
	AccountID   string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	dataDir := filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir)
	app.Flag("db-path", "Path to the SQLite database file.").Envar("WELLHUB_DB_PATH").Default(conventions.DBPath(dataDir)).StringVar(&c.DBPath)
	app.Flag("catalog", "Path to a tool catalog YAML file, the built-in catalog is used when missing.").Default(conventions.CatalogPath(dataDir)).StringVar(&c.CatalogPath)
	app.Flag("account", "Credit account ID.").Short('a').Default(conventions.DefaultAccountID).StringVar(&c.AccountID)

	return c
}

func (r RootCommand) newRepository(ctx context.Context) (*sqlite.Repository, error) {
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: r.DBPath,
		Logger: r.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}
	return repo, nil
}

// newToolRepository returns the catalog file repository when the file exists and
// the built-in one otherwise.
func (r RootCommand) newToolRepository() (storage.ToolRepository, error) {
	if r.CatalogPath == "" {
		return storageio.NewDefaultCatalogRepository(), nil
	}

	abs, err := filepath.Abs(r.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog path: %w", err)
	}

	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.Logger.Debugf("Catalog %s missing, using built-in catalog", abs)
			return storageio.NewDefaultCatalogRepository(), nil
		}
		return nil, fmt.Errorf("could not stat catalog: %w", err)
	}

	return storageio.NewCatalogYAMLRepository(os.DirFS(filepath.Dir(abs)), filepath.Base(abs)), nil
}

func (r RootCommand) newNotifier() notify.Notifier {
	return notify.NewMulti(
		notify.NewWriterNotifier(r.Stderr),
		notify.NewLogNotifier(r.Logger),
	)
}

func (r RootCommand) newPrinter(format string) printer.Printer {
	switch format {
	case formatJSON:
		return printer.NewJSONPrinter(r.Stdout)
	default:
		return printer.NewTablePrinter(r.Stdout)
	}
}
