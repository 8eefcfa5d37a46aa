// Package rules applies user-defined pattern → action rewrites to clipboard
// content before it is stored.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

type Action string

const (
	ActionTrim         Action = "trim"
	ActionUppercase    Action = "uppercase"
	ActionLowercase    Action = "lowercase"
	ActionRemoveSpaces Action = "remove-spaces"
)

var (
	ErrDuplicate  = errors.New("rule already exists")
	ErrNotFound   = errors.New("rule not found")
	ErrBadPattern = errors.New("invalid pattern")
)

type Rule struct {
	Name      string    `json:"name"`
	Pattern   string    `json:"pattern"`
	Action    Action    `json:"action"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// Apply rewrites the whole of content according to the rule's action.
// Unknown actions leave it alone.
func (a Action) Apply(content string) string {
	switch a {
	case ActionTrim:
		return strings.TrimSpace(content)
	case ActionUppercase:
		return strings.ToUpper(content)
	case ActionLowercase:
		return strings.ToLower(content)
	case ActionRemoveSpaces:
		return strings.ReplaceAll(content, " ", "")
	default:
		return content
	}
}

// Engine holds rules in insertion order. It is not safe for concurrent use;
// the owning session serializes access.
type Engine struct {
	rules    []Rule
	compiled map[string]*regexp.Regexp
}

func NewEngine(rules []Rule) *Engine {
	e := &Engine{compiled: make(map[string]*regexp.Regexp)}
	for _, r := range rules {
		e.rules = append(e.rules, r)
		if re, err := regexp.Compile(r.Pattern); err == nil {
			e.compiled[r.Pattern] = re
		}
	}
	return e
}

func (e *Engine) Add(name, pattern string, action Action, now time.Time) (Rule, error) {
	if _, ok := e.find(name); ok {
		return Rule{}, fmt.Errorf("%s: %w", name, ErrDuplicate)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("%s: %w: %v", pattern, ErrBadPattern, err)
	}
	r := Rule{Name: name, Pattern: pattern, Action: action, Enabled: true, CreatedAt: now}
	e.rules = append(e.rules, r)
	e.compiled[pattern] = re
	return r, nil
}

func (e *Engine) Remove(name string) error {
	i, ok := e.find(name)
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	e.rules = append(e.rules[:i], e.rules[i+1:]...)
	return nil
}

func (e *Engine) SetEnabled(name string, enabled bool) error {
	i, ok := e.find(name)
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	e.rules[i].Enabled = enabled
	return nil
}

// Rules returns a copy of the rules in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Apply runs every enabled rule left to right. Each rule tests the output of
// the rules before it, so an earlier rewrite can stop a later pattern from
// matching.
func (e *Engine) Apply(content string) string {
	for _, r := range e.rules {
		if !r.Enabled {
			continue
		}
		re, ok := e.compiled[r.Pattern]
		if !ok {
			continue
		}
		if re.MatchString(content) {
			content = r.Action.Apply(content)
		}
	}
	return content
}

func (e *Engine) find(name string) (int, bool) {
	for i, r := range e.rules {
		if r.Name == name {
			return i, true
		}
	}
	return -1, false
}
