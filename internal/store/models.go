package store

import "time"

// Collection names. Each one is stored as a single JSON document.
const (
	DocHistory    = "history"
	DocSnippets   = "snippets"
	DocTemplates  = "templates"
	DocAutoRules  = "auto_rules"
	DocEntryStats = "entry_stats"
	DocReminders  = "reminders"
	DocScheduled  = "scheduled_pastes"
)

type Document struct {
	Name      string    `json:"name"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DocumentInfo struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}
