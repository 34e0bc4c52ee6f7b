// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/docgen-client/internal/generate"
	"github.com/jonathan/docgen-client/internal/session"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSession outputs a human-readable summary of the session about to be
// submitted: identity, document type and mode, and collection sizes.
func (p *Printer) PrintSession(sess *session.Session) {
	if sess == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:     %s\n", sess.DocType()))
	sb.WriteString(fmt.Sprintf("Mode:     %s\n", sess.Mode()))
	sb.WriteString(fmt.Sprintf("Name:     %s\n", sess.Field("name")))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", sess.Field("email")))

	cols := sess.Snapshot()
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Skills:       %d\n", len(cols.Skills)))
	sb.WriteString(fmt.Sprintf("Achievements: %d\n", len(cols.Achievements)))
	sb.WriteString(fmt.Sprintf("Experience:   %d\n", len(cols.Experience)))
	sb.WriteString(fmt.Sprintf("Projects:     %d\n", len(cols.Projects)))
	sb.WriteString(fmt.Sprintf("Education:    %d\n", len(cols.Education)))

	shown := cols.Skills
	if len(shown) > maxItemsToShow {
		shown = shown[:maxItemsToShow]
	}
	for _, skill := range shown {
		sb.WriteString(fmt.Sprintf("  - %s\n", skill))
	}
	if len(cols.Skills) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cols.Skills)-maxItemsToShow))
	}

	p.printBox("Session Summary", strings.TrimRight(sb.String(), "\n"))
}

// PrintArtifact outputs a summary of a generated artifact and where it was
// written.
func (p *Printer) PrintArtifact(art *generate.Artifact, path string) {
	if art == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", art.Filename))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", art.ContentType))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes\n", len(art.Data)))
	sb.WriteString(fmt.Sprintf("Saved to: %s", path))

	p.printBox("Generated Document", sb.String())
}
