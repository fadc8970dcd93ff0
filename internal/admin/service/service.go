/*
Package service holds the domain services the embedding program works
against. Each service composes the backend client with its own TTL cache so
repeat reads inside the freshness window never touch the network.

Every service also keeps the message of the last operation that failed.
Callers still receive the error itself; the stored message exists for status
surfaces that want to display "what went wrong last" without threading errors
through.
*/
package service

import (
	"sync"
	"time"
)

// DefaultCacheTTL is the freshness window for listing caches. Carts are the
// exception and never expire; see CartService.
const DefaultCacheTTL = 5 * time.Minute

// errState records the most recent failure message of a service. Embedded by
// every service in this package.
type errState struct {
	mu      sync.Mutex
	lastErr string
}

// record stores err's message (clearing it on nil) and returns err unchanged.
func (s *errState) record(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = err.Error()
	} else {
		s.lastErr = ""
	}
	return err
}

// LastError returns the message of the most recent failed operation, or the
// empty string when the last operation succeeded.
func (s *errState) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
