package vault

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// HandoffNote is a drafted message to HR or a counsellor, kept for follow-up
type HandoffNote struct {
	AlertID string
	Actor   string
	Created time.Time
	To      string
	Subject string
	Body    string
	MailTo  string
}

// WriteHandoff stores the draft under Handoffs/ and returns its relative path
func (v *Vault) WriteHandoff(note HandoffNote) (string, error) {
	if note.Created.IsZero() {
		note.Created = time.Now().UTC()
	}

	// Handoffs/2024-01-15_150405_alice_<alert>.md
	filename := fmt.Sprintf("%s_%s_%s.md",
		note.Created.Format("2006-01-02_150405"),
		slugify(note.Actor),
		slugify(note.AlertID),
	)
	relPath := filepath.Join("Handoffs", filename)

	if err := WriteFileAtomic(filepath.Join(v.basePath, relPath), []byte(buildHandoff(note))); err != nil {
		return "", fmt.Errorf("writing handoff note: %w", err)
	}
	return relPath, nil
}

func buildHandoff(note HandoffNote) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "alert: %s\n", note.AlertID)
	fmt.Fprintf(&sb, "actor: %s\n", note.Actor)
	fmt.Fprintf(&sb, "created: %s\n", note.Created.Format(time.RFC3339))
	fmt.Fprintf(&sb, "to: %s\n", note.To)
	fmt.Fprintf(&sb, "subject: %q\n", note.Subject)
	if note.MailTo != "" {
		fmt.Fprintf(&sb, "mailto: %q\n", note.MailTo)
	}
	sb.WriteString("---\n\n")
	sb.WriteString(note.Body)
	sb.WriteString("\n")
	return sb.String()
}
