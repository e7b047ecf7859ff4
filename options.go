package plume

import (
	"log/slog"
	"strings"

	"github.com/plumenotes/plume/pkg/core"
)

// Option adjusts how Open and Init assemble the vault.
type Option func(*options)

type options struct {
	repository core.Repository
	logger     *slog.Logger
	extension  string
}

func defaultOptions() options {
	return options{}
}

// WithLogger routes the vault's diagnostics (skipped files, watcher trouble)
// through logger instead of slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithExtension changes the file extension notes are stored under. The
// leading dot is optional: "md" and ".md" mean the same thing.
func WithExtension(ext string) Option {
	return func(o *options) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		o.extension = ext
	}
}

// WithRepository substitutes a custom repository for the filesystem store.
// When set, the path argument of Open and Init is ignored.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}
