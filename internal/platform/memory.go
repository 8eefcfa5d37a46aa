package platform

import "sync"

// MemoryPort is an in-process clipboard. Every write bumps the change token,
// like a real pasteboard does. It backs headless runs and tests.
type MemoryPort struct {
	mu    sync.Mutex
	token int64
	text  string
	image []byte
	html  string
	err   error
}

func NewMemoryPort() *MemoryPort {
	return &MemoryPort{}
}

// SetText simulates another application copying text.
func (m *MemoryPort) SetText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text, m.image, m.html = text, nil, ""
	m.token++
}

func (m *MemoryPort) SetImage(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text, m.image, m.html = "", data, ""
	m.token++
}

func (m *MemoryPort) SetHTML(html string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text, m.image, m.html = "", nil, html
	m.token++
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (m *MemoryPort) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MemoryPort) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

func (m *MemoryPort) Image() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.image
}

func (m *MemoryPort) ChangeToken() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.err
}

func (m *MemoryPort) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, m.err
}

func (m *MemoryPort) ReadImage() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.image, m.err
}

func (m *MemoryPort) ReadHTML() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.html, m.err
}

func (m *MemoryPort) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.text, m.image, m.html = text, nil, ""
	m.token++
	return nil
}

func (m *MemoryPort) WriteImage(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.text, m.image, m.html = "", data, ""
	m.token++
	return nil
}
