// Package corelog provides the "[Component] message" logging
// convention used throughout the teacher's audio_extensions packages
// (log.Printf("[Morse] ..."), log.Printf("[FT8 Decoder] ...")),
// adopted verbatim for narrowcore's components.
package corelog

import "log"

// Logger prefixes every line with a fixed "[tag]" component name.
type Logger struct {
	tag string
}

// New returns a Logger that prefixes messages with "[tag]".
func New(tag string) *Logger {
	return &Logger{tag: tag}
}

// Printf logs a formatted message under this logger's tag.
func (l *Logger) Printf(format string, args ...any) {
	log.Printf("[%s] "+format, append([]any{l.tag}, args...)...)
}
