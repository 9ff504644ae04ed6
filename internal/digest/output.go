package digest

import (
	"encoding/json"
	"io"
)

// Output is the JSON object Waybar reads from a custom module's stdout.
type Output struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class,omitempty"`
}

// Output converts the digest to its Waybar envelope.
func (d Digest) Output() Output {
	return Output{Text: d.Text, Tooltip: d.Tooltip, Class: d.Class}
}

// Failure is the envelope printed when no forecast could be obtained.
func Failure(message string) Output {
	return Output{Text: "❌", Tooltip: message}
}

// Write encodes o as a single JSON line. HTML escaping is off so the
// tooltip markup reaches Waybar as written.
func (o Output) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(o)
}
