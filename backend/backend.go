// Package backend contains methods to store and retrieve data
// from and to the odb
package backend

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Nivl/ugit/ginternals"
	"github.com/Nivl/ugit/ginternals/config"
	"github.com/Nivl/ugit/ginternals/object"
	"github.com/Nivl/ugit/internal/cache"
	"github.com/Nivl/ugit/internal/syncutil"
	"github.com/spf13/afero"
)

// Sizes of the in-memory structures of the backend
const (
	// objectCacheSize is the maximum number of objects kept in memory
	objectCacheSize = 1000
	// objectMutexCount is the number of mutexes used to protect the
	// objects. Prime number are preferred
	objectMutexCount = 101
)

// RefWalkFunc represents a function that will be applied on all references
// found by WalkReferences()
type RefWalkFunc = func(ref *ginternals.Reference) error

// WalkStop is a fake error used to tell WalkReferences() to stop
var WalkStop = errors.New("stop walking") //nolint // the linter expects all errors to start with Err, but since here we're faking an error we don't want that

// Backend is a Backend implementation that uses the filesystem to
// store data.
// All the methods of a Backend can be called concurrently, except
// Init()
type Backend struct {
	config *config.Config
	fs     afero.Fs

	objectMu *syncutil.NamedMutex
	cache    *cache.LRU[ginternals.Oid, *object.Object]

	// refMu protects the files of the references
	refMu sync.RWMutex
}

// NewFS returns a new Backend object that stores its data on the
// filesystem of the config
func NewFS(cfg *config.Config) (*Backend, error) {
	c, err := cache.NewLRU[ginternals.Oid, *object.Object](objectCacheSize)
	if err != nil {
		return nil, fmt.Errorf("could not create the object cache: %w", err)
	}
	return &Backend{
		config:   cfg,
		fs:       cfg.FS,
		objectMu: syncutil.NewNamedMutex(objectMutexCount),
		cache:    c,
	}, nil
}

// Path returns the path of the metadata directory
func (b *Backend) Path() string {
	return ginternals.DotGitPath(b.config)
}

// Close frees the resources used by the Backend
// This method cannot be called concurrently with other methods
func (b *Backend) Close() error {
	b.cache.Clear()
	return nil
}
