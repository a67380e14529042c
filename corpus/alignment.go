package corpus

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedLink is returned when an alignment token is not of the form "f-e".
var ErrMalformedLink = errors.New("malformed alignment link")

// Link states that foreign word F generated english word E (0-based indices).
type Link struct {
	F int
	E int
}

// SentenceAlignment is the pair-list alignment of one sentence.
// Each english index appears at most once.
type SentenceAlignment []Link

// String renders the link as "f-e".
func (l Link) String() string {
	return strconv.Itoa(l.F) + "-" + strconv.Itoa(l.E)
}

// Swap returns the link with its sides exchanged.
func (l Link) Swap() Link {
	return Link{F: l.E, E: l.F}
}

// FormatAlignment renders one sentence as space-separated "f-e" tokens,
// each followed by a space.
func FormatAlignment(a SentenceAlignment) string {
	var sb strings.Builder
	for _, l := range a {
		sb.WriteString(l.String())
		sb.WriteByte(' ')
	}
	return sb.String()
}

// ParseAlignment parses one line of "f-e" tokens.
func ParseAlignment(line string) (SentenceAlignment, error) {
	fields := strings.Fields(line)
	out := make(SentenceAlignment, 0, len(fields))
	for _, tok := range fields {
		l, err := ParseLink(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// ParseLink parses a single "f-e" token.
func ParseLink(tok string) (Link, error) {
	fs, es, ok := strings.Cut(tok, "-")
	if !ok {
		return Link{}, fmt.Errorf("%w: %q", ErrMalformedLink, tok)
	}
	f, err := strconv.Atoi(fs)
	if err != nil || f < 0 {
		return Link{}, fmt.Errorf("%w: %q", ErrMalformedLink, tok)
	}
	e, err := strconv.Atoi(es)
	if err != nil || e < 0 {
		return Link{}, fmt.Errorf("%w: %q", ErrMalformedLink, tok)
	}
	return Link{F: f, E: e}, nil
}
