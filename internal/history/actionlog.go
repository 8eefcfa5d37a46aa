package history

import "time"

const actionLogSize = 100

type Action struct {
	Action    string    `json:"action"`
	EntryID   string    `json:"entry_id,omitempty"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// actionLog is a fixed-size ring, read back newest first.
type actionLog struct {
	buf  [actionLogSize]Action
	next int
	size int
}

func (l *actionLog) add(a Action) {
	l.buf[l.next] = a
	l.next = (l.next + 1) % actionLogSize
	if l.size < actionLogSize {
		l.size++
	}
}

func (l *actionLog) recent(n int) []Action {
	if n <= 0 || n > l.size {
		n = l.size
	}
	out := make([]Action, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, l.buf[(l.next-i+actionLogSize)%actionLogSize])
	}
	return out
}
