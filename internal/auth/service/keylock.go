package service

import "sync"

// pseudoLock serializes facade operations per pseudo. Entries are
// refcounted and dropped when the last holder releases, so the map stays
// bounded by the number of in-flight requests rather than the number of
// accounts ever seen.
type pseudoLock struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newPseudoLock() *pseudoLock {
	return &pseudoLock{locks: make(map[string]*lockEntry)}
}

func (l *pseudoLock) Lock(pseudo string) {
	l.mu.Lock()
	e, ok := l.locks[pseudo]
	if !ok {
		e = &lockEntry{}
		l.locks[pseudo] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

func (l *pseudoLock) Unlock(pseudo string) {
	l.mu.Lock()
	e := l.locks[pseudo]
	e.refs--
	if e.refs == 0 {
		delete(l.locks, pseudo)
	}
	l.mu.Unlock()

	e.mu.Unlock()
}

// LockPair acquires two pseudos in lexical order so that crossing renames
// cannot deadlock. Equal pseudos are locked once.
func (l *pseudoLock) LockPair(a, b string) {
	if a == b {
		l.Lock(a)
		return
	}
	if b < a {
		a, b = b, a
	}
	l.Lock(a)
	l.Lock(b)
}

func (l *pseudoLock) UnlockPair(a, b string) {
	if a == b {
		l.Unlock(a)
		return
	}
	if b < a {
		a, b = b, a
	}
	l.Unlock(b)
	l.Unlock(a)
}
