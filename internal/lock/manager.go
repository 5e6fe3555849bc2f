package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

var (
	// ErrLockTimeout is returned when acquiring a lock times out.
	ErrLockTimeout = errors.New("timeout acquiring lock")
	// ErrPathRequired is returned when a file path is empty.
	ErrPathRequired = errors.New("file path is required")
	// ErrNilLock is returned when a nil handle is passed to ReleaseLock.
	ErrNilLock = errors.New("nil lock handle")
)

// pollInterval is how often a blocked acquire re-checks the lock.
const pollInterval = 10 * time.Millisecond

// FileLock is a handle to a held OS-level lock.
type FileLock struct {
	Path  string
	flock *flock.Flock
}

// Manager acquires and releases per-file OS-level locks. The edit path
// locks the target for the duration of read-apply-write so two hashline
// processes cannot interleave their writes.
type Manager interface {
	AcquireLock(path string, timeout time.Duration) (*FileLock, error)
	ReleaseLock(l *FileLock) error
}

// FlockManager implements Manager with gofrs/flock sidecar lock files.
type FlockManager struct{}

// NewFlockManager returns a new FlockManager.
func NewFlockManager() *FlockManager {
	return &FlockManager{}
}

var _ Manager = (*FlockManager)(nil)

// AcquireLock obtains an exclusive lock on path's sidecar ".lock" file,
// polling until the timeout elapses.
func (m *FlockManager) AcquireLock(path string, timeout time.Duration) (*FileLock, error) {
	if path == "" {
		return nil, ErrPathRequired
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fl := flock.New(path + ".lock")
	locked, err := fl.TryLockContext(ctx, pollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("error acquiring file lock for %s: %w", path, err)
	}
	if !locked {
		return nil, ErrLockTimeout
	}

	return &FileLock{Path: path, flock: fl}, nil
}

// ReleaseLock releases a lock handle returned by AcquireLock.
func (m *FlockManager) ReleaseLock(l *FileLock) error {
	if l == nil {
		return ErrNilLock
	}
	if l.flock != nil {
		_ = l.flock.Unlock()
	}
	return nil
}
