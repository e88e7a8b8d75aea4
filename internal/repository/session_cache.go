package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/interview-backend/internal/entity"
	"github.com/patrickmn/go-cache"
)

// SessionRepository stores interview sessions by their opaque id.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *entity.Session) error
	GetSessionByID(ctx context.Context, id string) (*entity.Session, error)
	AcquireSessionByID(ctx context.Context, id string) (*entity.Session, func(), error)
	SaveSession(ctx context.Context, session *entity.Session) error
	DeleteSession(ctx context.Context, id string) error
}

var _ SessionRepository = &SessionCache{}

// SessionCache keeps sessions in memory and expires them after the TTL of
// inactivity. Callers always get their own copy of a session.
type SessionCache struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionCache(ttl, cleanupInterval time.Duration) *SessionCache {
	r := &SessionCache{
		cache: cache.New(ttl, cleanupInterval),
		locks: make(map[string]*sync.Mutex),
	}
	r.cache.OnEvicted(func(id string, _ interface{}) {
		r.mu.Lock()
		delete(r.locks, id)
		r.mu.Unlock()
	})
	return r
}

func (r *SessionCache) CreateSession(ctx context.Context, session *entity.Session) error {
	if err := r.cache.Add(session.ID, cloneSession(session), cache.DefaultExpiration); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionCache) GetSessionByID(ctx context.Context, id string) (*entity.Session, error) {
	v, ok := r.cache.Get(id)
	if !ok {
		return nil, entity.ErrSessionMissing
	}
	return cloneSession(v.(*entity.Session)), nil
}

// AcquireSessionByID returns the session with its lock held. The caller must
// call release once it has saved or abandoned its changes.
// Unknown ids never leave a lock behind.
func (r *SessionCache) AcquireSessionByID(ctx context.Context, id string) (*entity.Session, func(), error) {
	if _, ok := r.cache.Get(id); !ok {
		return nil, nil, entity.ErrSessionMissing
	}

	lock := r.lockFor(id)
	lock.Lock()

	session, err := r.GetSessionByID(ctx, id)
	if err != nil {
		r.dropLock(id, lock)
		lock.Unlock()
		return nil, nil, err
	}

	var once sync.Once
	return session, func() { once.Do(lock.Unlock) }, nil
}

// SaveSession replaces the stored session and restarts its TTL.
func (r *SessionCache) SaveSession(ctx context.Context, session *entity.Session) error {
	if _, ok := r.cache.Get(session.ID); !ok {
		return entity.ErrSessionMissing
	}
	r.cache.SetDefault(session.ID, cloneSession(session))
	return nil
}

func (r *SessionCache) DeleteSession(ctx context.Context, id string) error {
	r.cache.Delete(id)
	return nil
}

func (r *SessionCache) lockFor(id string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, ok := r.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[id] = lock
	}
	return lock
}

func (r *SessionCache) dropLock(id string, lock *sync.Mutex) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.locks[id] == lock {
		delete(r.locks, id)
	}
}
