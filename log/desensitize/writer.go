package desensitize

import (
	"io"

	"github.com/kochabx/dashkit/log/internal"
)

// Writer masks each write before passing it on
type Writer struct {
	writer io.Writer
	hook   *Hook
}

func NewWriter(w io.Writer, hook *Hook) *Writer {
	if w == nil || hook == nil {
		panic("desensitize: writer and hook are required")
	}
	return &Writer{writer: w, hook: hook}
}

// Write reports len(p) on success so zerolog does not treat a shorter
// masked line as a short write.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 || w.hook.RuleCount() == 0 {
		return w.writer.Write(p)
	}

	text := string(p)
	masked := w.hook.Desensitize(text)
	if masked == text {
		return w.writer.Write(p)
	}

	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)
	buf.WriteString(masked)

	if _, err := w.writer.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
