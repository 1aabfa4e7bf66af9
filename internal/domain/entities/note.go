package entities

import (
	"encoding/json"
	"fmt"
)

// Note is one decision or follow-up. The analysis pipeline writes plain
// strings; richer producers write objects. Both shapes are kept and written
// back as they came.
type Note struct {
	Text   string
	Fields map[string]interface{}
}

// TextNote builds a plain string note
func TextNote(text string) Note {
	return Note{Text: text}
}

// Raw returns the note in its stored shape, a string or an object
func (n Note) Raw() interface{} {
	if n.Fields != nil {
		return n.Fields
	}
	return n.Text
}

// MarshalJSON writes the note in its stored shape
func (n Note) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Raw())
}

// UnmarshalJSON accepts a string or an object
func (n *Note) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*n = Note{}
	case string:
		*n = Note{Text: v}
	case map[string]interface{}:
		*n = Note{Fields: v}
	default:
		*n = Note{Text: fmt.Sprint(v)}
	}
	return nil
}
