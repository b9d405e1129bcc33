package llm

import "sync"

// Keyring rotates through a pool of API keys round-robin, one key per
// request, so a burst of traffic spreads across quota buckets. It is an
// injected service constructed once at startup, not package state.
type Keyring struct {
	mu   sync.Mutex
	keys []string
	next int
}

func NewKeyring(keys []string) *Keyring {
	filtered := make([]string, 0, len(keys))
	for _, key := range keys {
		if key != "" {
			filtered = append(filtered, key)
		}
	}
	return &Keyring{keys: filtered}
}

// Next returns the next key in rotation, or "" when the ring is empty.
func (k *Keyring) Next() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.keys) == 0 {
		return ""
	}
	key := k.keys[k.next]
	k.next = (k.next + 1) % len(k.keys)
	return key
}

// Len reports how many keys are loaded.
func (k *Keyring) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.keys)
}
