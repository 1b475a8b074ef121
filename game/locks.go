package game

import (
	"sort"
	"strings"
	"time"
)

// Locks is the set of in-flight request keys. A held key blocks a second
// request for the same pair or the same (agent, object).
// It is only touched from the tick goroutine.
type Locks struct {
	held map[string]hold
}

type hold struct {
	since  time.Time
	owners []string
}

// ExpiredLock is a key dropped by Expire together with the ids that held it.
type ExpiredLock struct {
	Key    string
	Owners []string
}

// NewLocks creates an empty lock set.
func NewLocks() *Locks {
	return &Locks{held: make(map[string]hold)}
}

func conversationLock(pairKey string) string {
	return "conv:" + pairKey
}

func reactionLock(agentID, objectID string) string {
	return "react:" + agentID + ":" + objectID
}

func isConversationLock(key string) bool {
	return strings.HasPrefix(key, "conv:")
}

// TryAcquire takes key at now on behalf of owners. It fails if key is
// already held.
func (l *Locks) TryAcquire(key string, now time.Time, owners ...string) bool {
	if _, ok := l.held[key]; ok {
		return false
	}
	l.held[key] = hold{since: now, owners: owners}
	return true
}

// Owners returns the ids key was acquired for.
func (l *Locks) Owners(key string) []string {
	return l.held[key].owners
}

// Release frees key. Releasing a free key is a no-op.
func (l *Locks) Release(key string) {
	delete(l.held, key)
}

// Held reports whether key is taken.
func (l *Locks) Held(key string) bool {
	_, ok := l.held[key]
	return ok
}

// HeldSince returns when key was taken.
func (l *Locks) HeldSince(key string) (time.Time, bool) {
	h, ok := l.held[key]
	return h.since, ok
}

// releaseIfSince frees key only if it is still the acquisition made at since.
func (l *Locks) releaseIfSince(key string, since time.Time) bool {
	if h, ok := l.held[key]; ok && h.since.Equal(since) {
		delete(l.held, key)
		return true
	}
	return false
}

// Len returns the number of held keys.
func (l *Locks) Len() int {
	return len(l.held)
}

// Expire releases every key held for at least ttl and returns them sorted by key.
func (l *Locks) Expire(now time.Time, ttl time.Duration) []ExpiredLock {
	var expired []ExpiredLock
	for key, h := range l.held {
		if now.Sub(h.since) >= ttl {
			expired = append(expired, ExpiredLock{Key: key, Owners: h.owners})
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].Key < expired[j].Key })
	for _, e := range expired {
		delete(l.held, e.Key)
	}
	return expired
}
