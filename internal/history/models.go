package history

import (
	"errors"
	"slices"
	"time"
	"unicode/utf8"
)

type Kind string

const (
	KindText    Kind = "text"
	KindImage   Kind = "image"
	KindHTML    Kind = "html"
	KindSnippet Kind = "snippet"
)

func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindText, KindImage, KindHTML, KindSnippet:
		return k, true
	}
	return "", false
}

const (
	previewLength = 50
	imagePreview  = "Image"
)

var (
	ErrInvalidIndex  = errors.New("invalid index")
	ErrNotFound      = errors.New("not found")
	ErrLocked        = errors.New("entry is locked")
	ErrNotText       = errors.New("entry has no text content")
	ErrClipboard     = errors.New("clipboard unavailable")
	ErrNothingToUndo = errors.New("nothing to undo")
)

type Entry struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Image     []byte     `json:"image,omitempty"`
	Kind      Kind       `json:"kind"`
	CreatedAt time.Time  `json:"created_at"`
	Preview   string     `json:"preview"`
	SizeBytes int        `json:"size_bytes"`
	Pinned    bool       `json:"pinned"`
	Favorite  bool       `json:"favorite"`
	Locked    bool       `json:"locked"`
	Tags      []string   `json:"tags"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (e Entry) IsText() bool {
	return e.Kind != KindImage
}

func (e Entry) clone() Entry {
	e.Tags = slices.Clone(e.Tags)
	e.Image = slices.Clone(e.Image)
	return e
}

// setContent replaces the text and keeps the derived fields in step.
func (e *Entry) setContent(content string) {
	e.Content = content
	e.Preview = previewOf(content)
	e.SizeBytes = len(content)
}

// addTags merges tags into the entry, skipping ones it already has.
func (e *Entry) addTags(tags []string) []string {
	var added []string
	for _, t := range tags {
		if !slices.Contains(e.Tags, t) {
			e.Tags = append(e.Tags, t)
			added = append(added, t)
		}
	}
	return added
}

func previewOf(content string) string {
	if utf8.RuneCountInString(content) <= previewLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:previewLength])
}

type Flag int

const (
	FlagPinned Flag = iota
	FlagFavorite
	FlagLocked
)

func (f Flag) String() string {
	switch f {
	case FlagPinned:
		return "pin"
	case FlagFavorite:
		return "favorite"
	case FlagLocked:
		return "lock"
	}
	return "unknown"
}

// Filter selects entries in List. Nil fields match everything; set fields
// must all match.
type Filter struct {
	Kind     *Kind
	Pinned   *bool
	Favorite *bool
}

func (f Filter) match(e Entry) bool {
	if f.Kind != nil && e.Kind != *f.Kind {
		return false
	}
	if f.Pinned != nil && e.Pinned != *f.Pinned {
		return false
	}
	if f.Favorite != nil && e.Favorite != *f.Favorite {
		return false
	}
	return true
}

type EntryStats struct {
	UseCount       int       `json:"use_count"`
	LastUsed       time.Time `json:"last_used"`
	Language       string    `json:"language,omitempty"`
	ExtractedLinks []string  `json:"extracted_links"`
	Summary        *string   `json:"summary,omitempty"`
}

// Reminder and ScheduledPaste are recorded for the user to review; nothing
// fires them.
type Reminder struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entry_id"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
	Completed bool      `json:"completed"`
}

type ScheduledPaste struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entry_id"`
	At        time.Time `json:"at"`
	Completed bool      `json:"completed"`
}
