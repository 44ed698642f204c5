package client

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// IDPrefix starts every client id.
const IDPrefix = "client"

// JustNow is the relative activity label set on freshly touched records.
const JustNow = "Just now"

// Client is a consulting customer. Projects and Conversations are denormalized counts
// maintained by the project and conversation services.
type Client struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Industry      string    `json:"industry"`
	Avatar        string    `json:"avatar"`
	AvatarColor   string    `json:"avatarColor"`
	Projects      int       `json:"projects"`
	Conversations int       `json:"conversations"`
	LastActive    string    `json:"lastActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (c Client) RecordID() string { return c.ID }

// Initials derives an avatar glyph from the first letters of up to two words of name.
func Initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
