package memory

import (
	"time"

	"agrocalc-be/pkg/funnel"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps the live funnel sessions, keyed by username. A
// session idles out after an hour of silence; the user's durable fields live
// in the database and survive the eviction.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, expired items purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *funnel.Session) {
	r.cache.Set(session.Username, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(username string) (*funnel.Session, bool) {
	if x, found := r.cache.Get(username); found {
		return x.(*funnel.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(username string) {
	r.cache.Delete(username)
}
