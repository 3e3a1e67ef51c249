// Package peertable suppresses repeated observations of the same peer.
//
// The table is bounded and time-indexed: an entry expires after the configured
// window and the least recently seen entry is evicted once the table is full.
// Nothing is persisted.
package peertable

import (
	"fmt"
	"sync"
	"time"

	"github.com/projectdiscovery/gcache"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanbeacon/pkg/peerdiscovery/beacon"
)

const (
	// DefaultSize is the number of peers remembered when no size is given
	DefaultSize = 1024
)

// Table remembers which peers were observed recently
type Table struct {
	window time.Duration

	// mu makes the Has/Set pair in Seen a single step across tasks
	mu   sync.Mutex
	seen gcache.Cache[string, time.Time]
}

// New creates a table that remembers up to size peers for window
func New(size int, window time.Duration) (*Table, error) {
	if window <= 0 {
		return nil, fmt.Errorf("invalid dedupe window %s", window)
	}
	if size <= 0 {
		size = DefaultSize
	}
	return &Table{
		window: window,
		seen: gcache.New[string, time.Time](size).
			LRU().
			Expiration(window).
			Build(),
	}, nil
}

func key(obs beacon.Observation) string {
	return fmt.Sprintf("%016x|%s", obs.Peer.Hash(), obs.Source)
}

// Seen records obs and reports whether the same peer was already observed
// from the same address within the window. It is safe for concurrent use.
func (t *Table) Seen(obs beacon.Observation) bool {
	k := key(obs)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.seen.Has(k) {
		return true
	}
	if err := t.seen.Set(k, time.Now()); err != nil {
		gologger.Debug().Msgf("could not remember peer %s from %s: %s", obs.Peer, obs.Source, err)
	}
	return false
}

// Len returns the number of unexpired entries
func (t *Table) Len() int {
	return t.seen.Len(true)
}

// Filter returns an observer that forwards only observations not seen within the window
func (t *Table) Filter(next beacon.Observer) beacon.Observer {
	return beacon.ObserverFunc(func(obs beacon.Observation) {
		if t.Seen(obs) {
			return
		}
		next.Observe(obs)
	})
}
