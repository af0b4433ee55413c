// Package logger implements a package-scope list of log entries. The list
// is unbounded: entries are kept until Clear.
//
// It is the one piece of intentionally global state in this module: an
// outer debugger or diagnostics
// collaborator wants to Tail() the log regardless of which C64 instance
// produced it, so the buffer lives at package scope rather than hanging off
// any one component.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

type entry struct {
	tag     string
	message string
}

func (e entry) String() string {
	return fmt.Sprintf("%s: %s", e.tag, e.message)
}

var (
	mu      sync.Mutex
	entries []entry
)

// Log adds a new entry to the log, tagged with the name of the component
// that raised it.
func Log(tag string, message string) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, entry{tag: tag, message: message})
}

// Logf is Log() with fmt.Sprintf() formatting of the message.
func Logf(tag string, format string, values ...interface{}) {
	Log(tag, fmt.Sprintf(format, values...))
}

// Clear empties the log. Intended for use between test runs.
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	entries = nil
}

// Write outputs every entry in the log to w, one per line.
func Write(w io.Writer) {
	Tail(w, -1)
}

// Tail outputs the most recent n entries in the log to w, one per line. A
// request for more entries than the log contains is satisfied with however
// many entries actually exist; a request for zero entries writes nothing.
func Tail(w io.Writer, n int) {
	mu.Lock()
	snapshot := make([]entry, len(entries))
	copy(snapshot, entries)
	mu.Unlock()

	if n >= 0 && n < len(snapshot) {
		snapshot = snapshot[len(snapshot)-n:]
	}

	var s strings.Builder
	for _, e := range snapshot {
		s.WriteString(e.String())
		s.WriteString("\n")
	}
	io.WriteString(w, s.String())
}
