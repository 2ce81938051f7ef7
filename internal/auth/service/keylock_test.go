package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPseudoLock_SerializesSameKey(t *testing.T) {
	l := newPseudoLock()

	const n = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock("utilisateur")
			defer l.Unlock("utilisateur")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, n, counter)
}

func TestPseudoLock_ReleasesEntries(t *testing.T) {
	l := newPseudoLock()

	l.Lock("a")
	l.Unlock("a")
	l.LockPair("b", "c")
	l.UnlockPair("b", "c")
	l.LockPair("d", "d")
	l.UnlockPair("d", "d")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.locks)
}

func TestPseudoLock_CrossingPairsDoNotDeadlock(t *testing.T) {
	l := newPseudoLock()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			l.LockPair("ancienPseudo", "nouveauPseudo")
			l.UnlockPair("ancienPseudo", "nouveauPseudo")
		}()
		go func() {
			defer wg.Done()
			l.LockPair("nouveauPseudo", "ancienPseudo")
			l.UnlockPair("nouveauPseudo", "ancienPseudo")
		}()
	}
	wg.Wait()
}
