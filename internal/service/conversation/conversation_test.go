// internal/service/conversation/conversation_test.go
package conversation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPreviewShortBodyUntouched(t *testing.T) {
	assert.Equal(t, "hello", preview("hello"))
	assert.Equal(t, "", preview(""))
}

func TestPreviewTruncatesLongBody(t *testing.T) {
	body := strings.Repeat("a", 300)

	got := preview(body)

	assert.Equal(t, strings.Repeat("a", 120)+"...", got)
}

// A body full of multi-byte characters must be cut between characters, not
// inside one.
func TestPreviewCutsOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("ä", 200)

	got := preview(body)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("ä", 120)+"...", got)
}

func TestPreviewCountsRunesNotBytes(t *testing.T) {
	// 110 two-byte runes is 220 bytes but still under the character cap
	body := strings.Repeat("ж", 110)

	assert.Equal(t, body, preview(body))
}
