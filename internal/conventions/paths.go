package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default wellhub data directory name (relative to home).
	DefaultDataDir = ".wellhub"
	// DBFile is the SQLite database filename inside the data directory.
	DBFile = "wellhub.db"
	// CatalogFile is the optional tool catalog override inside the data directory.
	CatalogFile = "catalog.yaml"

	// DefaultAccountID is the credit account used when none is set.
	DefaultAccountID = "default"
	// DefaultWelcomeCredits are granted to the account of a new user.
	DefaultWelcomeCredits = 100
)

// DBPath returns the database path inside a data directory.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}

// CatalogPath returns the catalog override path inside a data directory.
func CatalogPath(dataDir string) string {
	return filepath.Join(dataDir, CatalogFile)
}
