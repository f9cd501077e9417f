package prompts

import (
	"fmt"
	"strings"
	"sync"
)

// Registry manages prompt templates keyed by ID and language variant.
type Registry struct {
	mu      sync.RWMutex
	prompts map[string]map[Language]*Prompt // ID -> Language -> Prompt
}

var defaultRegistry *Registry
var defaultRegistryOnce sync.Once

// DefaultRegistry returns the process-wide registry that the thinking
// prompts register into at init time.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates an empty prompt registry.
func NewRegistry() *Registry {
	return &Registry{
		prompts: make(map[string]map[Language]*Prompt),
	}
}

// Register adds a prompt to the registry, replacing any previous template
// with the same ID and language.
func (r *Registry) Register(p *Prompt) {
	if p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.prompts[p.ID] == nil {
		r.prompts[p.ID] = make(map[Language]*Prompt)
	}
	r.prompts[p.ID][p.Language] = p
}

// Get retrieves a prompt in the requested language, falling back to the
// English variant when the localized one is missing.
func (r *Registry) Get(id string, lang Language) (*Prompt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	variants, ok := r.prompts[id]
	if !ok {
		return nil, fmt.Errorf("prompt not found: %s", id)
	}

	if p, ok := variants[lang]; ok {
		return p, nil
	}
	if p, ok := variants[LangEnglish]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("prompt %s has no %s or English variant", id, lang)
}

// List returns all prompt IDs in the registry.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.prompts))
	for id := range r.prompts {
		ids = append(ids, id)
	}
	return ids
}

// Builder composes a prompt from a registered template plus extra fragments
// and {{key}} variable substitutions.
type Builder struct {
	fragments []string
	variables map[string]string
}

// NewBuilder creates a builder based on a registered prompt.
func NewBuilder(registry *Registry, id string, lang Language) (*Builder, error) {
	base, err := registry.Get(id, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to get base prompt: %w", err)
	}

	return &Builder{
		fragments: []string{base.Content},
		variables: make(map[string]string),
	}, nil
}

// AddFragment appends a fragment to the prompt.
func (b *Builder) AddFragment(text string) *Builder {
	b.fragments = append(b.fragments, text)
	return b
}

// SetVariable sets a variable for template substitution.
func (b *Builder) SetVariable(key, value string) *Builder {
	b.variables[key] = value
	return b
}

// Build constructs the final prompt string.
func (b *Builder) Build() string {
	result := strings.Join(b.fragments, "\n\n")
	for key, value := range b.variables {
		placeholder := fmt.Sprintf("{{%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}
