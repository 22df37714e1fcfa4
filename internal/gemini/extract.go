package gemini

import (
	"github.com/tidwall/gjson"
)

// textPath addresses the first text fragment of the first candidate.
const textPath = "candidates.0.content.parts.0.text"

// FirstText returns the text at candidates[0].content.parts[0].text.
// ok is false when any level of the path is missing, not a string, or empty.
// A body that is not valid JSON returns ErrInvalidJSON.
func FirstText(body []byte) (text string, ok bool, err error) {
	if !gjson.ValidBytes(body) {
		return "", false, ErrInvalidJSON
	}
	r := gjson.GetBytes(body, textPath)
	if r.Type != gjson.String || r.Str == "" {
		return "", false, nil
	}
	return r.Str, true, nil
}
