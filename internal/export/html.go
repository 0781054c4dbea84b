// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/ifsca-dit/intellichat-tui/internal/model"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports transcripts to a self-contained HTML document with
// embedded CSS. The stylesheet carries print rules, so the browser's
// print-to-PDF produces a clean document.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a transcript to HTML format.
func (e *HTMLExporter) Export(tr *model.Transcript) ([]byte, error) {
	if tr == nil {
		return nil, fmt.Errorf("transcript is nil")
	}
	messages := settledMessages(tr)
	if len(messages) == 0 {
		return nil, fmt.Errorf("transcript has no settled messages")
	}

	title := e.options.title(tr)

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(title)))
	sb.WriteString(fmt.Sprintf("    <meta name=\"date\" content=\"%s\">\n", tr.CreatedAt.Format(time.RFC3339)))
	sb.WriteString(e.getCSS())
	sb.WriteString("</head>\n")
	sb.WriteString("<body>\n")
	sb.WriteString("    <div class=\"container\">\n")

	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", html.EscapeString(title)))
	sb.WriteString("            <div class=\"metadata\">\n")
	sb.WriteString(fmt.Sprintf("                <span><strong>Started:</strong> %s</span>\n", formatTimestamp(tr.CreatedAt)))
	sb.WriteString(fmt.Sprintf("                <span><strong>Exchanges:</strong> %d</span>\n", len(messages)/2))
	sb.WriteString("            </div>\n")
	sb.WriteString("        </header>\n")

	sb.WriteString("        <main class=\"conversation\">\n")
	for _, msg := range messages {
		sb.WriteString(e.renderMessage(msg))
	}
	sb.WriteString("        </main>\n")

	sb.WriteString("        <footer class=\"footer\">\n")
	sb.WriteString(fmt.Sprintf("            <p>Exported from <strong>IntelliChat</strong> on %s</p>\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))
	sb.WriteString("        </footer>\n")

	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

// renderMessage renders a single message block.
func (e *HTMLExporter) renderMessage(msg *model.Message) string {
	roleClass := "user"
	if msg.Role == model.RoleAssistant {
		roleClass = "assistant"
	}
	if msg.IsFailed() {
		roleClass += " failed"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("            <article class=\"message %s\">\n", roleClass))
	sb.WriteString("                <div class=\"message-header\">\n")
	sb.WriteString(fmt.Sprintf("                    <span class=\"role\">%s</span>\n",
		html.EscapeString(msg.Role.DisplayName())))
	if e.options.IncludeTimestamps {
		sb.WriteString(fmt.Sprintf("                    <span class=\"timestamp\">%s</span>\n",
			formatShortTimestamp(msg.Timestamp)))
	}
	sb.WriteString("                </div>\n")

	sb.WriteString("                <div class=\"content\">")
	sb.WriteString(renderParagraphs(msg.Content))
	sb.WriteString("</div>\n")

	if msg.Role == model.RoleAssistant && !msg.IsFailed() {
		sb.WriteString(e.renderSources(msg))
		if msg.Confidence != nil {
			sb.WriteString(fmt.Sprintf("                <div class=\"confidence\">Confidence: %s</div>\n",
				formatConfidence(*msg.Confidence)))
		}
	}

	sb.WriteString("            </article>\n")
	return sb.String()
}

// renderSources renders the de-duplicated citation list.
func (e *HTMLExporter) renderSources(msg *model.Message) string {
	sources := msg.UniqueSources()
	if len(sources) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("                <div class=\"sources\">\n")
	sb.WriteString("                    <span class=\"sources-label\">Sources</span>\n")
	sb.WriteString("                    <ul>\n")
	for _, src := range sources {
		name := html.EscapeString(src.FileName)
		if e.options.FileURL != nil {
			sb.WriteString(fmt.Sprintf("                        <li><a href=\"%s\">%s</a> (page %d)</li>\n",
				html.EscapeString(e.options.FileURL(src.FileName)), name, src.Page))
		} else {
			sb.WriteString(fmt.Sprintf("                        <li>%s (page %d)</li>\n", name, src.Page))
		}
	}
	sb.WriteString("                    </ul>\n")
	sb.WriteString("                </div>\n")
	return sb.String()
}

// renderParagraphs converts plain text to escaped HTML paragraphs.
func renderParagraphs(content string) string {
	var sb strings.Builder
	for _, para := range strings.Split(strings.TrimSpace(content), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		escaped := html.EscapeString(para)
		escaped = strings.ReplaceAll(escaped, "\n", "<br>\n")
		sb.WriteString("<p>")
		sb.WriteString(escaped)
		sb.WriteString("</p>")
	}
	return sb.String()
}

// =============================================================================
// STYLESHEET
// =============================================================================

// getCSS returns the embedded stylesheet, including print rules.
func (e *HTMLExporter) getCSS() string {
	return `    <style>
        :root {
            --bg: #f7f7f8;
            --fg: #1a1a1a;
            --muted: #6b6b76;
            --user-bg: #e8eefc;
            --assistant-bg: #ffffff;
            --failed-fg: #b00020;
            --border: #dcdce0;
        }
        * { box-sizing: border-box; }
        body {
            margin: 0;
            background: var(--bg);
            color: var(--fg);
            font-family: -apple-system, "Segoe UI", Roboto, sans-serif;
            line-height: 1.6;
        }
        .container { max-width: 800px; margin: 0 auto; padding: 2rem 1rem; }
        .header h1 { margin: 0 0 0.5rem; font-size: 1.5rem; }
        .metadata { color: var(--muted); font-size: 0.875rem; display: flex; gap: 1.5rem; }
        .conversation { margin-top: 2rem; }
        .message {
            background: var(--assistant-bg);
            border: 1px solid var(--border);
            border-radius: 8px;
            padding: 1rem 1.25rem;
            margin-bottom: 1rem;
        }
        .message.user { background: var(--user-bg); }
        .message.failed .content { color: var(--failed-fg); }
        .message-header {
            display: flex;
            justify-content: space-between;
            font-size: 0.8rem;
            margin-bottom: 0.5rem;
        }
        .role { font-weight: 600; }
        .timestamp { color: var(--muted); }
        .content p { margin: 0 0 0.75rem; }
        .content p:last-child { margin-bottom: 0; }
        .sources { margin-top: 0.75rem; font-size: 0.875rem; }
        .sources-label { font-weight: 600; }
        .sources ul { margin: 0.25rem 0 0; padding-left: 1.25rem; }
        .confidence { margin-top: 0.5rem; color: var(--muted); font-size: 0.8rem; }
        .footer { margin-top: 2rem; color: var(--muted); font-size: 0.8rem; text-align: center; }
        @media print {
            body { background: #fff; }
            .container { max-width: none; padding: 0; }
            .message { break-inside: avoid; border-color: #bbb; }
            .sources a { color: inherit; text-decoration: none; }
        }
    </style>
`
}
