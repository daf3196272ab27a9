package plugin

import (
	"sync"

	"github.com/felixgeelhaar/stagecraft/internal/domain/publish"
)

// settingsCache caches resolved unit settings per item type so repeated
// acceptance passes over large item trees do not re-resolve the same
// overrides. Entries are deep-copied on the way in and out; callers own
// what they get back.
type settingsCache struct {
	mu      sync.Mutex
	entries map[string]publish.Settings
}

func newSettingsCache() *settingsCache {
	return &settingsCache{entries: make(map[string]publish.Settings)}
}

func (c *settingsCache) get(itemType string) (publish.Settings, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	settings, ok := c.entries[itemType]
	if !ok {
		return nil, false
	}
	return settings.Clone(), true
}

// mustGet returns a copy of a just-added entry.
func (c *settingsCache) mustGet(itemType string) publish.Settings {
	settings, _ := c.get(itemType)
	return settings
}

func (c *settingsCache) add(itemType string, settings publish.Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[itemType] = settings.Clone()
}
