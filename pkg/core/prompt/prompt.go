// Package prompt is the centralized prompt library for the intelligence
// pipeline. Each section role (carry-forward vs. final report) has exactly
// one versioned template, so prompt changes are tracked in one place instead
// of being scattered across call sites.
package prompt

// PromptTemplate represents a reusable system prompt with metadata.
type PromptTemplate struct {
	ID           string // Unique identifier (e.g. "intel.carry")
	Name         string // Human-readable name
	Role         string // Section role: "carry" or "final"
	Version      string // Version for tracking changes
	SystemPrompt string // The system prompt content
}
