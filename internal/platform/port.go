// Package platform adapts the operating system clipboard and paste action to
// the narrow interfaces the history engine consumes.
package platform

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

var ErrUnsupported = errors.New("clipboard format not supported")

// Port is the shared system clipboard. Reads return empty values when the
// requested format is not present.
type Port interface {
	ChangeToken() (int64, error)
	ReadText() (string, error)
	ReadImage() ([]byte, error)
	ReadHTML() (string, error)
	Write(text string) error
	WriteImage(data []byte) error
}

// SystemPort talks to the desktop clipboard through atotto/clipboard, which
// only exposes plain text. The change token is derived by hashing the
// current text on each call.
type SystemPort struct {
	mu       sync.Mutex
	lastHash string
	token    int64
}

func NewSystemPort() *SystemPort {
	return &SystemPort{}
}

// Available reports whether a clipboard utility was found on this system.
func (p *SystemPort) Available() bool {
	return !clipboard.Unsupported
}

func (p *SystemPort) ChangeToken() (int64, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read clipboard: %w", err)
	}
	return p.observe(text), nil
}

func (p *SystemPort) observe(text string) int64 {
	h := contentHash(text, nil)

	p.mu.Lock()
	defer p.mu.Unlock()
	if h != p.lastHash {
		p.lastHash = h
		p.token++
	}
	return p.token
}

func (p *SystemPort) ReadText() (string, error) {
	return clipboard.ReadAll()
}

func (p *SystemPort) ReadImage() ([]byte, error) {
	return nil, nil
}

func (p *SystemPort) ReadHTML() (string, error) {
	return "", nil
}

func (p *SystemPort) Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

func (p *SystemPort) WriteImage(data []byte) error {
	return ErrUnsupported
}

func contentHash(text string, image []byte) string {
	hasher := sha256.New()
	hasher.Write([]byte(text))
	if image != nil {
		hasher.Write(image)
	}
	return fmt.Sprintf("%x", hasher.Sum(nil))
}
