// internal/pkg/ics/ics.go
package ics

import (
	"fmt"
	"strings"
	"time"
)

// Event describes a single calendar entry to be exported as an iCalendar
// (RFC 5545) payload.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	Duration    time.Duration
	CreatedAt   time.Time
}

const dateTimeLayout = "20060102T150405Z"

// Render produces the text/calendar payload for a single event. Dates are
// emitted in UTC.
func Render(ev Event) string {
	var b strings.Builder

	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//homescout//showings//EN")
	writeLine(&b, "CALSCALE:GREGORIAN")
	writeLine(&b, "METHOD:PUBLISH")
	writeLine(&b, "BEGIN:VEVENT")
	writeLine(&b, "UID:"+escape(ev.UID))
	writeLine(&b, "DTSTAMP:"+ev.CreatedAt.UTC().Format(dateTimeLayout))
	writeLine(&b, "DTSTART:"+ev.Start.UTC().Format(dateTimeLayout))
	writeLine(&b, "DTEND:"+ev.Start.Add(ev.Duration).UTC().Format(dateTimeLayout))
	writeLine(&b, "SUMMARY:"+escape(ev.Summary))
	if ev.Description != "" {
		writeLine(&b, "DESCRIPTION:"+escape(ev.Description))
	}
	if ev.Location != "" {
		writeLine(&b, "LOCATION:"+escape(ev.Location))
	}
	writeLine(&b, "END:VEVENT")
	writeLine(&b, "END:VCALENDAR")

	return b.String()
}

// Filename returns a safe attachment name for the event.
func Filename(ev Event) string {
	name := strings.ToLower(strings.TrimSpace(ev.Summary))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, name)
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}
	name = strings.Trim(name, "-")
	if name == "" {
		name = "showing"
	}
	return fmt.Sprintf("%s.ics", name)
}

// writeLine terminates content lines with CRLF as the format requires.
func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

// escape applies RFC 5545 text escaping for commas, semicolons, backslashes
// and newlines.
func escape(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return r.Replace(s)
}
