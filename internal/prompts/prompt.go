package prompts

// Prompt is a registered prompt template with metadata. Templates use simple
// {{key}} placeholders filled in by the Builder.
type Prompt struct {
	ID          string   // Unique identifier (e.g., "thought.contextual")
	Language    Language // Variant this template is written in
	Content     string   // The template text
	Description string   // Human-readable description
	Tags        []string // Tags for categorization
}
