// internal/dailykey/dailykey.go
//
// Date-derived bearer token.
//
// Context
// -------
// The eyecareportal and ocumail APIs accept a bearer token that both sides
// derive independently from the current UTC date: the lowercase hex MD5 of
// "YYYY-MM-DD".  It rolls over exactly at UTC midnight.  It is a shared
// coarse-grained value, not a secret.
//
// Key is the pure function.  Source wraps it with an injectable clock and
// a one-entry memo keyed by date so hot paths skip the hash.  A Source is
// built once in main and handed to the resolver and the aggregator; there
// is no package-level state.
package dailykey

import (
	"crypto/md5"
	"encoding/hex"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// Key returns the 32-char lowercase hex digest for t's UTC calendar date.
func Key(t time.Time) string {
	sum := md5.Sum([]byte(Date(t)))
	return hex.EncodeToString(sum[:])
}

// Date formats t as the UTC date string the key is derived from.
func Date(t time.Time) string { return t.UTC().Format(dateLayout) }

// Source memoises Key for the current date.  Safe for concurrent use.
type Source struct {
	now func() time.Time

	mu   sync.Mutex
	date string
	key  string
}

// NewSource returns a Source reading the given clock.  A nil clock means
// time.Now.
func NewSource(now func() time.Time) *Source {
	if now == nil {
		now = time.Now
	}
	return &Source{now: now}
}

// Key returns today's key, recomputing only when the UTC date changed.
func (s *Source) Key() string {
	today := Date(s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.date != today {
		sum := md5.Sum([]byte(today))
		s.date, s.key = today, hex.EncodeToString(sum[:])
	}
	return s.key
}

// Window names the current key window (the UTC date).  Memoised lookups
// are scoped to it so they expire with the key.
func (s *Source) Window() string { return Date(s.now()) }

// UntilRollover is the time left before the next UTC midnight.
func (s *Source) UntilRollover() time.Duration {
	now := s.now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	return next.Sub(now)
}
