package personality

import (
	"fmt"
	"sync"

	"rag_reply_bot/pkg"
)

// catalogOrder fixes the listing order of the built-in profiles.
var catalogOrder = []string{"default", "friendly", "professional", "witty"}

var catalog = map[string]pkg.PersonalityProfile{
	"default": {
		Key:         "default",
		Name:        "Default",
		Description: "Replies the way the user trained it to, no extra flavor",
		SystemPrompt: "You are a personal assistant who responds exactly like the user would. " +
			"Based on the examples provided, generate a reply that matches the user's style and tone.",
	},
	"friendly": {
		Key:         "friendly",
		Name:        "Friendly",
		Description: "Warm, casual and encouraging",
		SystemPrompt: "You are a warm, friendly assistant. Respond casually and with encouragement, " +
			"while still matching the style shown in the user's examples.",
	},
	"professional": {
		Key:         "professional",
		Name:        "Professional",
		Description: "Concise, formal and to the point",
		SystemPrompt: "You are a professional assistant. Respond concisely and formally, " +
			"while still matching the style shown in the user's examples.",
	},
	"witty": {
		Key:         "witty",
		Name:        "Witty",
		Description: "Playful with a light sense of humor",
		SystemPrompt: "You are a witty assistant. Respond with light humor where appropriate, " +
			"while still matching the style shown in the user's examples.",
	},
}

// Registry holds the fixed personality catalog plus one process-wide
// mutable "current" selector. Selection is global, not per-user.
type Registry struct {
	mu      sync.RWMutex
	current string
}

// NewRegistry creates a registry with the default profile selected.
func NewRegistry() *Registry {
	return &Registry{current: "default"}
}

// SetPersonality switches the active profile. Unknown keys are rejected
// without mutating the selection.
func (r *Registry) SetPersonality(key string) error {
	if _, ok := catalog[key]; !ok {
		return fmt.Errorf("unknown personality: %s", key)
	}
	r.mu.Lock()
	r.current = key
	r.mu.Unlock()
	return nil
}

// Current returns the active profile.
func (r *Registry) Current() pkg.PersonalityProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return catalog[r.current]
}

// SystemPrompt returns the active profile's system prompt.
func (r *Registry) SystemPrompt() string {
	return r.Current().SystemPrompt
}

// List returns all profiles in catalog order.
func (r *Registry) List() []pkg.PersonalityProfile {
	profiles := make([]pkg.PersonalityProfile, 0, len(catalogOrder))
	for _, key := range catalogOrder {
		profiles = append(profiles, catalog[key])
	}
	return profiles
}
