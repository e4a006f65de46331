// internal/config/follow.go
package config

import (
	"fmt"
	"sort"
	"strings"
)

// FollowEntry is one named entry of the follow list.
type FollowEntry struct {
	ID   int
	Name string
}

// AddFollow inserts or renames a follow list entry.
func (c *Config) AddFollow(id int, name string) error {
	name = strings.TrimSpace(name)
	if id <= 0 {
		return fmt.Errorf("follow: id %d must be > 0", id)
	}
	if name == "" {
		return fmt.Errorf("follow: name required")
	}
	if c.Download.FollowUsers == nil {
		c.Download.FollowUsers = map[int]string{}
	}
	c.Download.FollowUsers[id] = name
	return nil
}

// RemoveFollow deletes a follow list entry. It reports whether one existed.
// The current follow target is left as is.
func (c *Config) RemoveFollow(id int) bool {
	if _, ok := c.Download.FollowUsers[id]; !ok {
		return false
	}
	delete(c.Download.FollowUsers, id)
	return true
}

// UseFollow makes id the current follow target.
func (c *Config) UseFollow(id int) error {
	if id <= 0 {
		return fmt.Errorf("follow: id %d must be > 0", id)
	}
	c.Download.FollowUserID = id
	return nil
}

// FollowName returns the display name for id, or "custom" when unnamed.
func (c *Config) FollowName(id int) string {
	if name, ok := c.Download.FollowUsers[id]; ok {
		return name
	}
	return "custom"
}

// FollowList returns the follow list sorted by id.
func (c *Config) FollowList() []FollowEntry {
	out := make([]FollowEntry, 0, len(c.Download.FollowUsers))
	for id, name := range c.Download.FollowUsers {
		out = append(out, FollowEntry{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
