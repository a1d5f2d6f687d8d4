package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Version is the monotonically increasing revision of a versioned aggregate.
// Every accepted state transition increases the version by exactly one; the
// event ledgers store one row per (tenant, aggregate, version).
//
// Version is the optimistic-concurrency primitive shared by Sale, PickingPlan,
// and PickingRoute: a writer proposes a transition against the version it last
// read, and the proposal is rejected when the stored version has moved on.
type Version int64

// InitialVersion is the version of a freshly created aggregate; its creation
// event is appended at this version.
const InitialVersion Version = 1

// NewVersion creates a validated version.
func NewVersion(v int64) (Version, error) {
	version := Version(v)
	if err := version.Validate(); err != nil {
		return 0, err
	}
	return version, nil
}

// Validate checks that the version is at least InitialVersion.
func (v Version) Validate() error {
	if v < InitialVersion {
		return errs.NewVersionIsInvalidError("version",
			fmt.Errorf("%d is below the initial version", v))
	}
	return nil
}

// Next returns the successor version.
func (v Version) Next() Version {
	return v + 1
}

// Propose performs the optimistic-concurrency check shared by every aggregate:
// it returns the successor version when expected matches the current value, and
// errs.ErrVersionConflict when a concurrent writer advanced the aggregate first.
//
// The storage layer repeats the same check with a conditional UPDATE, so a
// proposal that passes here can still lose the race at commit time; callers
// retry with fresh state in both cases.
func (v Version) Propose(expected Version) (Version, error) {
	if err := expected.Validate(); err != nil {
		return 0, err
	}

	if v != expected {
		return 0, fmt.Errorf("expected version %d, current is %d: %w",
			expected, v, errs.ErrVersionConflict)
	}

	return v.Next(), nil
}

// Int64 returns the raw version for persistence.
func (v Version) Int64() int64 {
	return int64(v)
}
