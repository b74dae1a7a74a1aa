package extract

import (
	"bytes"
	"encoding/json"
	"io"
)

const MissingVideoIDMessage = "No video ID provided"

// Result is the outcome of one extraction: either Success with the flattened
// transcript or Failure with a human readable message.
type Result struct {
	Success bool
	Text    string
	Error   string
}

func Success(text string) Result {
	return Result{Success: true, Text: text}
}

func Failure(message string) Result {
	if message == "" {
		message = "unknown error"
	}
	return Result{Success: false, Error: message}
}

type successJSON struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

type failureJSON struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MarshalJSON emits only the fields of the active variant.
func (r Result) MarshalJSON() ([]byte, error) {
	var v any = failureJSON{Success: false, Error: r.Error}
	if r.Success {
		v = successJSON{Success: true, Text: r.Text}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var raw struct {
		Success bool   `json:"success"`
		Text    string `json:"text"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Result{Success: raw.Success, Text: raw.Text, Error: raw.Error}
	return nil
}

// Encode writes r to w as a single line of JSON.
func Encode(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}
