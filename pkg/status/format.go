package status

import (
	"fmt"
)

// FileFormatter defines how file outcomes and progress should be formatted
type FileFormatter interface {
	// FormatFileOperation formats the outcome of one file
	FormatFileOperation(info FileInfo) string

	// FormatProgress formats a progress message
	FormatProgress(processed int, done bool) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a file outcome with emojis
func (f *DefaultFileFormatter) FormatFileOperation(info FileInfo) string {
	switch info.Status {
	case StatusModified:
		return fmt.Sprintf("📝 Normalized %s (%d replaced, %d skipped)", info.Path, info.Replacements, info.Skips)
	case StatusPending:
		return fmt.Sprintf("🔎 Would normalize %s (%d to replace, %d skipped)", info.Path, info.Replacements, info.Skips)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s", info.Path)
	default:
		return fmt.Sprintf("👍 Unchanged %s (%d skipped)", info.Path, info.Skips)
	}
}

// FormatProgress formats a progress message
func (f *DefaultFileFormatter) FormatProgress(processed int, done bool) string {
	if done {
		return fmt.Sprintf("✅ Processed %d files", processed)
	}
	return fmt.Sprintf("⏳ Processed %d files", processed)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
