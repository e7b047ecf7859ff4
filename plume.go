package plume

import (
	"context"
	"fmt"

	"github.com/plumenotes/plume/pkg/adapters/fs"
	"github.com/plumenotes/plume/pkg/core"
)

// Open prepares the vault at path and returns a ready-to-use note service.
// The vault directory is created when it does not exist yet; Open fails if
// path points at something that is not a directory.
func Open(path string, opts ...Option) (*core.Service, error) {
	repo, err := Init(path, opts...)
	if err != nil {
		return nil, err
	}
	return core.NewService(repo), nil
}

// Init prepares the vault and returns the bare repository. Most callers want
// Open; Init is for wiring a repository into a custom service or test rig.
func Init(path string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	repo := o.repository
	if repo == nil {
		repo = fs.NewStore(fs.Config{
			Path:      path,
			Extension: o.extension,
			Logger:    o.logger,
		})
	}

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize vault at %s: %w", path, err)
	}
	return repo, nil
}
