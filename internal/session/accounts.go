package session

import "github.com/kapu/tictac-client/internal/wire"

// AccountCache mirrors the server's account list for local autofill only.
// It is never consulted for authentication; the server validates every
// login itself.
type AccountCache struct {
	passwords map[string]string
	names     []string // server order
}

func NewAccountCache() *AccountCache {
	return &AccountCache{passwords: make(map[string]string)}
}

// Replace swaps the whole cache for the given entries. The server list is
// authoritative, so previous contents are dropped, not merged.
func (c *AccountCache) Replace(entries []wire.AccountEntry) {
	c.passwords = make(map[string]string, len(entries))
	c.names = c.names[:0]
	for _, e := range entries {
		if _, exists := c.passwords[e.Username]; !exists {
			c.names = append(c.names, e.Username)
		}
		c.passwords[e.Username] = e.Password
	}
}

// Remove drops one account after a server-confirmed deletion.
func (c *AccountCache) Remove(username string) bool {
	if _, ok := c.passwords[username]; !ok {
		return false
	}
	delete(c.passwords, username)
	for i, n := range c.names {
		if n == username {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
	return true
}

// Password returns the cached password for autofill.
func (c *AccountCache) Password(username string) (string, bool) {
	p, ok := c.passwords[username]
	return p, ok
}

// Names returns usernames in server order.
func (c *AccountCache) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Entries returns the cache as wire entries, for persistence.
func (c *AccountCache) Entries() []wire.AccountEntry {
	out := make([]wire.AccountEntry, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, wire.AccountEntry{Username: n, Password: c.passwords[n]})
	}
	return out
}

func (c *AccountCache) Len() int { return len(c.names) }
