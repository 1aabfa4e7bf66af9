// Package extrafields keeps the JSON object members a struct does not
// model, so records written by other producers survive a decode and
// re-encode unchanged.
package extrafields

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// Names returns the JSON member names declared by the struct type t.
// Embedded structs without a tag contribute their own names.
func Names(t reflect.Type) map[string]struct{} {
	names := make(map[string]struct{})
	collect(t, names)
	return names
}

func collect(t reflect.Type, names map[string]struct{}) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if f.Anonymous && name == "" {
			collect(f.Type, names)
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		names[name] = struct{}{}
	}
}

// Split decodes the JSON object data and returns the members whose names
// are not in known. Numbers are kept as json.Number. A nil map is
// returned when every member is known.
func Split(data []byte, known map[string]struct{}) (map[string]interface{}, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}

	var extra map[string]interface{}
	for name, raw := range members {
		if _, ok := known[name]; ok {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		if extra == nil {
			extra = make(map[string]interface{})
		}
		extra[name] = v
	}
	return extra, nil
}

// Merge adds the extra members to the JSON object data. Members already
// present in data are left as they are.
func Merge(data []byte, extra map[string]interface{}) ([]byte, error) {
	if len(extra) == 0 {
		return data, nil
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	if members == nil {
		members = make(map[string]json.RawMessage, len(extra))
	}
	for name, v := range extra {
		if _, ok := members[name]; ok {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		members[name] = raw
	}
	return json.Marshal(members)
}

// Without returns a copy of extra minus the named members
func Without(extra map[string]interface{}, names ...string) map[string]interface{} {
	if len(extra) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(extra))
	for k, v := range extra {
		out[k] = v
	}
	for _, name := range names {
		delete(out, name)
	}
	return out
}
