// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/ifsca-dit/intellichat-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a transcript to Markdown format.
func (e *MarkdownExporter) Export(tr *model.Transcript) ([]byte, error) {
	if tr == nil {
		return nil, fmt.Errorf("transcript is nil")
	}
	messages := settledMessages(tr)
	if len(messages) == 0 {
		return nil, fmt.Errorf("transcript has no settled messages")
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(e.options.title(tr))))
	sb.WriteString(fmt.Sprintf("- **Started**: %s\n", formatTimestamp(tr.CreatedAt)))
	sb.WriteString(fmt.Sprintf("- **Exchanges**: %d\n", len(messages)/2))
	sb.WriteString("\n---\n\n")

	for i, msg := range messages {
		label := msg.Role.DisplayName()
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n",
				label, formatShortTimestamp(msg.Timestamp)))
		} else {
			sb.WriteString(fmt.Sprintf("### %s\n\n", label))
		}

		sb.WriteString(strings.TrimSpace(msg.Content))
		sb.WriteString("\n\n")

		if msg.Role == model.RoleAssistant && !msg.IsFailed() {
			sb.WriteString(e.formatSources(msg))
			if msg.Confidence != nil {
				sb.WriteString(fmt.Sprintf("<sub>Confidence: %s</sub>\n\n",
					formatConfidence(*msg.Confidence)))
			}
		}

		if i < len(messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from IntelliChat on %s*\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// formatSources renders the de-duplicated source citations for a message.
func (e *MarkdownExporter) formatSources(msg *model.Message) string {
	sources := msg.UniqueSources()
	if len(sources) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("**Sources**:\n\n")
	for _, src := range sources {
		if e.options.FileURL != nil {
			sb.WriteString(fmt.Sprintf("- [%s](%s) (page %d)\n",
				escapeMarkdown(src.FileName), e.options.FileURL(src.FileName), src.Page))
		} else {
			sb.WriteString(fmt.Sprintf("- %s (page %d)\n",
				escapeMarkdown(src.FileName), src.Page))
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

// =============================================================================
// HELPERS
// =============================================================================

// settledMessages returns the transcript messages minus any pending
// placeholder and its paired question.
func settledMessages(tr *model.Transcript) []*model.Message {
	messages := tr.Messages
	if last := tr.LastMessage(); last != nil && last.IsPending() {
		messages = messages[:len(messages)-1]
		// Drop the question the placeholder was answering, too.
		if len(messages) > 0 && messages[len(messages)-1].Role == model.RoleUser {
			messages = messages[:len(messages)-1]
		}
	}
	return messages
}

// escapeMarkdown escapes characters that would break formatting in headings
// and list items.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}
