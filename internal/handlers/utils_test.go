package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"trims", "  hello  ", 50, "hello"},
		{"strips markup", "<b>bold</b>", 50, "bbold/b"},
		{"strips brackets", `{x}[y]\z`, 50, "xyz"},
		{"truncates runes", strings.Repeat("é", 30), 20, strings.Repeat("é", 20)},
		{"empty", "   ", 50, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitize(tc.in, tc.maxLen))
		})
	}
}

func TestPlayerName(t *testing.T) {
	assert.Equal(t, "Player", playerName(""))
	assert.Equal(t, "Alice", playerName(" Alice "))
	assert.Equal(t, strings.Repeat("a", 20), playerName(strings.Repeat("a", 25)))
}

func TestDecode(t *testing.T) {
	var req joinRoomRequest
	assert.NoError(t, decode(nil, &req))
	assert.NoError(t, decode([]byte("null"), &req))
	assert.NoError(t, decode([]byte(`{"room_code":"ABC123"}`), &req))
	assert.Equal(t, "ABC123", req.RoomCode)
	assert.ErrorIs(t, decode([]byte(`{"room_code":5}`), &req), errInvalidRequest)
}
