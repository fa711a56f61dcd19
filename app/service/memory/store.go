package memory

import (
	"path/filepath"

	"chatbot/app/config"

	"github.com/samber/oops"
)

// Store persists the identity and taught-responses documents.
// Every Save rewrites the whole document; a document that was never written loads as empty.
type Store interface {
	LoadIdentity() (string, error)
	SaveIdentity(name string) error
	DeleteIdentity() error

	LoadResponses() (*Responses, error)
	SaveResponses(responses *Responses) error

	Close() error
}

func OpenStore(cfg config.Storage) (Store, error) {
	switch cfg.Driver {
	case "json":
		return NewJSONStore(cfg.Dir, cfg.UserFile, cfg.CustomFile)
	case "sqlite":
		return NewSQLiteStore(filepath.Join(cfg.Dir, cfg.SQLiteFile))
	default:
		return nil, oops.In("memory").With("driver", cfg.Driver).Errorf("unknown storage driver")
	}
}
