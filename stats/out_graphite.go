package stats

import (
	"bytes"
	"io"
	"time"
)

// WriteGraphite writes all metrics in graphite plaintext format to w.
// prefix gets a trailing dot added if needed.
func WriteGraphite(w io.Writer, prefix string, now time.Time) error {
	if len(prefix) != 0 && prefix[len(prefix)-1] != '.' {
		prefix = prefix + "."
	}
	buf := make([]byte, 0)
	var fullPrefix bytes.Buffer
	for _, name := range registry.names() {
		fullPrefix.Reset()
		fullPrefix.WriteString(prefix)
		fullPrefix.WriteString(name)
		fullPrefix.WriteRune('.')
		buf = registry.get(name).ReportGraphite(fullPrefix.Bytes(), buf, now)
	}
	_, err := w.Write(buf)
	return err
}
