// Package tz resolves time zone identifiers to UTC offset rules.
//
// The rest of the library stores every instant in UTC; zones matter only at
// the parsing and formatting boundary, and always arrive here as names. The
// package embeds the tzdata database so lookups work on hosts without a
// system zoneinfo directory.
package tz

import (
	"errors"
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"
)

// ErrTZ wraps errors returned by the tz package.
var ErrTZ = errors.New("tz")

// Local is the identifier for the system's local time zone.
const Local = "local"

// Resolver resolves zone identifiers to locations.
type Resolver interface {
	// Zone returns the location named by name. The empty string and "UTC"
	// resolve to UTC, and "local" resolves to the system zone. Any other
	// name is an IANA zone identifier.
	Zone(name string) (*time.Location, error)
}

// Default returns the package resolver, which caches IANA lookups.
func Default() Resolver { return defaultResolver }

// Zone resolves name with the package resolver.
func Zone(name string) (*time.Location, error) {
	return defaultResolver.Zone(name)
}

var defaultResolver = &cachingResolver{}

// cachingResolver wraps time.LoadLocation with a read-mostly cache. Zone
// files never change within a process, so entries are loaded once and are
// safe for unsynchronized reads thereafter.
type cachingResolver struct {
	mu    sync.RWMutex
	cache map[string]*time.Location
}

func (r *cachingResolver) Zone(name string) (*time.Location, error) {
	switch name {
	case "", "UTC", "utc":
		return time.UTC, nil
	case Local:
		return time.Local, nil
	}

	r.mu.RLock()
	loc, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unrecognized time zone %q", ErrTZ, name)
	}

	r.mu.Lock()
	if r.cache == nil {
		r.cache = map[string]*time.Location{}
	}
	r.cache[name] = loc
	r.mu.Unlock()

	return loc, nil
}
