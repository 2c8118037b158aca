// Package envcache forces a rebuild of a project's direnv-managed
// development environment and re-stamps the cache timestamps so direnv does
// not immediately repeat the rebuild on its next staleness check.
package envcache

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/d6e/cratedocs/log"
	"github.com/morikuni/failure/v2"
)

// ErrorCode defines error types for refresh operations
type ErrorCode string

const (
	// ErrTargetMissing represents an error when the project directory does not exist
	ErrTargetMissing ErrorCode = "TargetMissing"
	// ErrMarkerTouch represents an error touching the .envrc marker file
	ErrMarkerTouch ErrorCode = "MarkerTouch"
	// ErrCacheStamp represents an error re-stamping a profile cache file
	ErrCacheStamp ErrorCode = "CacheStamp"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

const (
	markerFile = ".envrc"
	cacheDir   = ".direnv"
	cachePat   = "*.rc"
)

// CommandRunner runs the environment-management tool against a project
// directory, blocking until it exits. A non-nil error means the rebuild
// failed and no timestamps may be touched.
type CommandRunner interface {
	Run(ctx context.Context, dir string) error
}

// Refresher rebuilds a project's cached development environment.
//
// The operation is strictly sequential and aborts on the first failure:
// validate the directory, run a forced rebuild, touch the marker file,
// then stamp every profile cache file with the marker's new mtime.
type Refresher struct {
	runner CommandRunner
	now    func() time.Time
}

// RefresherOption configures a Refresher
type RefresherOption func(*Refresher)

// WithRunner replaces the rebuild command runner
func WithRunner(r CommandRunner) RefresherOption {
	return func(rf *Refresher) { rf.runner = r }
}

// WithClock replaces the time source used for the marker touch
func WithClock(now func() time.Time) RefresherOption {
	return func(rf *Refresher) { rf.now = now }
}

// NewRefresher creates a Refresher. By default it runs direnv with a
// forced nix-direnv reload.
func NewRefresher(opts ...RefresherOption) *Refresher {
	r := &Refresher{
		runner: &DirenvRunner{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refresh performs the full refresh sequence against dir.
//
// A missing directory fails before any subprocess or file touch. A failed
// rebuild is returned as-is so the caller can propagate the subprocess
// exit status, and leaves every timestamp untouched.
func (r *Refresher) Refresh(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return failure.New(ErrTargetMissing,
			failure.Message("Project directory not found; run `direnv reload` inside the checkout manually"),
			failure.Context{"dir": dir},
		)
	}

	log.Debug("forcing environment rebuild", "dir", dir)
	if err := r.runner.Run(ctx, dir); err != nil {
		return err
	}

	marker := filepath.Join(dir, markerFile)
	stamp, err := r.touchMarker(marker)
	if err != nil {
		return err
	}

	return stampCaches(dir, stamp)
}

// touchMarker sets the marker file's mtime to now, creating the file if it
// does not exist, and returns the mtime actually recorded by the
// filesystem.
func (r *Refresher) touchMarker(marker string) (time.Time, error) {
	if _, err := os.Stat(marker); os.IsNotExist(err) {
		f, err := os.OpenFile(marker, os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return time.Time{}, failure.New(ErrMarkerTouch,
				failure.Message("Failed to create marker file"),
				failure.Context{"path": marker},
			)
		}
		f.Close()
	}

	now := r.now()
	if err := os.Chtimes(marker, now, now); err != nil {
		return time.Time{}, failure.New(ErrMarkerTouch,
			failure.Message("Failed to touch marker file"),
			failure.Context{"path": marker},
		)
	}

	// Read the stamp back so cache files copy the exact stored value,
	// not a value the filesystem may have truncated
	info, err := os.Stat(marker)
	if err != nil {
		return time.Time{}, failure.Wrap(err)
	}

	log.Debug("marker touched", "path", marker, "mtime", info.ModTime())
	return info.ModTime(), nil
}

// stampCaches sets every profile cache file's mtime to exactly stamp.
// Zero matching files is a no-op: the marker touch alone is enough to
// trigger a reload on the next direnv invocation.
func stampCaches(dir string, stamp time.Time) error {
	matches, err := filepath.Glob(filepath.Join(dir, cacheDir, cachePat))
	if err != nil {
		return failure.Wrap(err)
	}

	if len(matches) == 0 {
		log.Debug("no profile cache files to stamp", "dir", dir)
		return nil
	}

	for _, path := range matches {
		if err := os.Chtimes(path, stamp, stamp); err != nil {
			return failure.New(ErrCacheStamp,
				failure.Message("Failed to stamp profile cache file"),
				failure.Context{"path": path},
			)
		}
		log.Debug("cache file stamped", "path", path, "mtime", stamp)
	}

	return nil
}
