package audit

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// CSV export contract: field order and quoting are stable because downstream
// consumers parse exports positionally. Every field is double-quoted, which
// rules out encoding/csv (it quotes only when required).

var csvHeader = []string{
	"Timestamp",
	"Actor Email",
	"Actor Name",
	"Action",
	"Resource",
	"Resource Name",
	"Details",
	"IP Address",
	"Changes",
}

// WriteCSV renders a header line plus one line per entry.
func WriteCSV(w io.Writer, entries []Entry) error {
	if err := writeRow(w, csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.ActorEmail,
			e.ActorName,
			e.Action,
			e.Resource,
			e.ResourceName,
			e.Details,
			e.IPAddress,
			renderChanges(e.Changes),
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func renderChanges(changes []FieldChange) string {
	if len(changes) == 0 {
		return ""
	}
	parts := make([]string, 0, len(changes))
	for _, ch := range changes {
		parts = append(parts, fmt.Sprintf("%s: %s → %s", ch.Field, ch.OldValue, ch.NewValue))
	}
	return strings.Join(parts, "; ")
}

func writeRow(w io.Writer, fields []string) error {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}
