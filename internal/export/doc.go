// Copyright (c) 2025 IntelliChat Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export provides transcript export functionality for IntelliChat.
//
// This package supports exporting the current chat transcript to Markdown and
// to a self-contained, print-ready HTML document. The HTML stylesheet carries
// print rules so the browser's print-to-PDF yields a clean handout.
//
// # Key Types
//
//   - Exporter: Main export interface
//   - MarkdownExporter: Markdown output with linked source citations
//   - HTMLExporter: Styled HTML output with embedded CSS
//   - Options: Export configuration options
//
// # Usage
//
// Export a transcript to Markdown:
//
//	opts := export.DefaultOptions()
//	opts.FileURL = client.FileURL
//	path, err := export.ExportMarkdown(transcript, opts)
//
// A pending exchange is skipped: exporting mid-call writes only settled
// question/answer pairs.
package export
