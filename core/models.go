package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is either supplied by the content catalog or generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ContentID derives the ID of a catalog entry imported without one.
func ContentID(kind Kind, title string) ID {
	return IDFromContent(string(kind) + ":" + title)
}

// Kind identifies which collection an entry belongs to.
type Kind string

const (
	// KindRights identifies a rights guide entry.
	KindRights Kind = "rights"
	// KindTemplate identifies a dispute-letter template entry.
	KindTemplate Kind = "template"
)

// RightsEntry is a reference guide describing a set of legal rights.
type RightsEntry struct {
	Id              ID       `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Summary         string   `json:"summary" yaml:"summary"`
	Tags            []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	DetailedContent string   `json:"detailed_content,omitempty" yaml:"detailed_content,omitempty"`
	Category        string   `json:"category,omitempty" yaml:"category,omitempty"` // Browse filter; scored only for entries matched elsewhere
	ReadTime        string   `json:"read_time,omitempty" yaml:"read_time,omitempty"`
}

// TemplateEntry is a downloadable dispute-letter template.
type TemplateEntry struct {
	Id                ID      `json:"id" yaml:"id"`
	Title             string  `json:"title" yaml:"title"`
	Category          string  `json:"category,omitempty" yaml:"category,omitempty"`
	Body              string  `json:"body,omitempty" yaml:"body,omitempty"`
	Description       string  `json:"description,omitempty" yaml:"description,omitempty"`
	Preview           string  `json:"preview,omitempty" yaml:"preview,omitempty"`
	UsageInstructions string  `json:"usage_instructions,omitempty" yaml:"usage_instructions,omitempty"`
	Price             float64 `json:"price,omitempty" yaml:"price,omitempty"`
	Premium           bool    `json:"premium,omitempty" yaml:"premium,omitempty"`
}

// Gated reports whether the template must be unlocked before its body can be exported.
func (t *TemplateEntry) Gated() bool {
	return t.Premium || t.Price > 0
}

// SearchResult is a ranked match produced by a single search invocation.
// Exactly one of Rights or Template is set and matches Kind.
type SearchResult struct {
	Kind           Kind           `json:"kind"`
	Id             ID             `json:"id"`
	Title          string         `json:"title"`
	Summary        string         `json:"summary,omitempty"`
	Category       string         `json:"category,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
	Body           string         `json:"body,omitempty"`
	RelevanceScore int            `json:"relevance_score"`
	Rights         *RightsEntry   `json:"-"`
	Template       *TemplateEntry `json:"-"`
}

// SavedItem references a catalog entry the user bookmarked.
type SavedItem struct {
	Kind    Kind      `json:"kind"`
	EntryId ID        `json:"entry_id"`
	Title   string    `json:"title"` // Title at save time, for listings when the entry is gone
	SavedAt time.Time `json:"saved_at"`
}

// Unlock records a completed payment for a premium template.
type Unlock struct {
	Id         ID        `json:"id"`
	TemplateId ID        `json:"template_id"`
	Reference  string    `json:"reference"` // Wallet transaction or payment session reference
	Amount     float64   `json:"amount"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// ChecklistProgress is the persisted state of a scenario checklist.
type ChecklistProgress struct {
	Scenario       string    `json:"scenario"`
	CompletedSteps []string  `json:"completed_steps"`
	CurrentPhase   int       `json:"current_phase"`
	UpdatedAt      time.Time `json:"updated_at"`
}
