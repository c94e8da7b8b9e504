package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	start := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	ev := Event{
		UID:         "showing-42@homescout",
		Summary:     "Viewing: Sea View Villa",
		Description: "Meet at the gate;\nbring ID",
		Location:    "12 Ocean Drive, Limassol",
		Start:       start,
		Duration:    45 * time.Minute,
		CreatedAt:   start.Add(-48 * time.Hour),
	}

	payload := Render(ev)

	require.True(t, strings.HasPrefix(payload, "BEGIN:VCALENDAR\r\n"))
	require.True(t, strings.HasSuffix(payload, "END:VCALENDAR\r\n"))

	assert.Contains(t, payload, "UID:showing-42@homescout\r\n")
	assert.Contains(t, payload, "DTSTART:20260314T150000Z\r\n")
	assert.Contains(t, payload, "DTEND:20260314T154500Z\r\n")
	// text escaping per RFC 5545
	assert.Contains(t, payload, "DESCRIPTION:Meet at the gate\\;\\nbring ID\r\n")
	assert.Contains(t, payload, "LOCATION:12 Ocean Drive\\, Limassol\r\n")

	// every content line must be CRLF-terminated
	for _, line := range strings.Split(strings.TrimSuffix(payload, "\r\n"), "\r\n") {
		assert.NotContains(t, line, "\n")
	}
}

func TestRenderNonUTCStart(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	ev := Event{
		UID:       "x",
		Summary:   "s",
		Start:     time.Date(2026, 1, 1, 12, 0, 0, 0, loc),
		Duration:  30 * time.Minute,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	payload := Render(ev)
	assert.Contains(t, payload, "DTSTART:20260101T100000Z\r\n")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "viewing-sea-view-villa.ics", Filename(Event{Summary: "Viewing: Sea View Villa"}))
	assert.Equal(t, "showing.ics", Filename(Event{Summary: "???"}))
}
