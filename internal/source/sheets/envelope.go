package sheets

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/vilaca/bounty-board/internal/source"
)

// Envelope describes the fixed-length wrapper around the JSON document in a
// spreadsheet query response:
//
//	/*O_o*/
//	google.visualization.Query.setResponse({...});
//
// The prefix is 47 characters and the suffix is 2 characters.
type Envelope struct {
	PrefixLen int
	SuffixLen int
}

// DefaultEnvelope matches the spreadsheet query endpoint.
var DefaultEnvelope = Envelope{PrefixLen: 47, SuffixLen: 2}

// Unwrap strips the envelope from body and returns the embedded JSON document.
// Lengths are counted in characters, not bytes.
func (e Envelope) Unwrap(body string) (string, error) {
	if e.PrefixLen < 0 || e.SuffixLen < 0 {
		return "", fmt.Errorf("%w: invalid envelope lengths %d/%d",
			source.ErrDataFormat, e.PrefixLen, e.SuffixLen)
	}

	runes := []rune(body)
	if len(runes) < e.PrefixLen+e.SuffixLen {
		return "", fmt.Errorf("%w: payload has %d characters, envelope alone needs %d",
			source.ErrDataFormat, len(runes), e.PrefixLen+e.SuffixLen)
	}

	doc := string(runes[e.PrefixLen : len(runes)-e.SuffixLen])
	if !gjson.Valid(doc) {
		return "", fmt.Errorf("%w: embedded document is not valid JSON", source.ErrDataFormat)
	}

	return doc, nil
}
