// Package sammelband compiles batches of web articles into a single
// readable document. Submitted URLs are classified, fetched through a
// headless browser, reduced to their article content and bound together
// into a styled HTML, PDF or Markdown file that can be downloaded, mailed
// or deleted.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, sqlite/, readability/).
package sammelband
