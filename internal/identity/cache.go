// Package identity holds the process-wide pointer to the logged-in user.
//
// The cache is the source of truth for authorization. Its durable mirror
// lives in the app_session table and is managed by the auth service; the
// cache itself never touches storage, so its lock is never held across I/O.
package identity

import "sync"

type Cache struct {
	mu     sync.RWMutex
	userID int64
	set    bool
}

func NewCache() *Cache {
	return &Cache{}
}

// Get returns the current user id and whether anyone is logged in.
func (c *Cache) Get() (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID, c.set
}

func (c *Cache) Set(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = userID
	c.set = true
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = 0
	c.set = false
}
