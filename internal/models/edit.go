package models

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"hashline/internal/hashline"
)

// PayloadError reports a structurally invalid edits payload. Shape errors
// are caught here, upstream of the edit engine.
type PayloadError struct {
	Reason string
}

func (e *PayloadError) Error() string {
	return "malformed edits payload: " + e.Reason
}

// JSON shapes for the four edit kinds. Each payload element is an object
// with exactly one of these keys.
type SetLineEdit struct {
	Anchor  string `json:"anchor"`
	NewText string `json:"new_text"`
}

type ReplaceLinesEdit struct {
	StartAnchor string `json:"start_anchor"`
	EndAnchor   string `json:"end_anchor"`
	NewText     string `json:"new_text"`
}

type InsertAfterEdit struct {
	Anchor string `json:"anchor"`
	Text   string `json:"text"`
}

type ReplaceEdit struct {
	OldText string `json:"old_text"`
	NewText string `json:"new_text"`
	All     bool   `json:"all,omitempty"`
}

// editKinds maps each variant key to the fields it requires. An element
// matching zero or more than one key is rejected rather than guessed at.
var editKinds = map[string][]string{
	"set_line":      {"anchor", "new_text"},
	"replace_lines": {"start_anchor", "end_anchor", "new_text"},
	"insert_after":  {"anchor", "text"},
	"replace":       {"old_text", "new_text"},
}

var editKindOrder = []string{"set_line", "replace_lines", "insert_after", "replace"}

// ParseEditsPayload decodes an edits payload into engine operations. Two
// equivalent encodings are accepted: a bare array of edit objects, or an
// object with an "edits" field holding that array. An empty or absent
// edits list is valid and decodes to zero operations.
func ParseEditsPayload(raw []byte) ([]hashline.Operation, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &PayloadError{Reason: "invalid JSON"}
	}
	root := gjson.ParseBytes(raw)

	var items []gjson.Result
	switch {
	case root.IsArray():
		items = root.Array()
	case root.IsObject():
		edits := root.Get("edits")
		if !edits.Exists() {
			return nil, nil
		}
		if !edits.IsArray() {
			return nil, &PayloadError{Reason: `"edits" must be an array`}
		}
		items = edits.Array()
	default:
		return nil, &PayloadError{Reason: `payload must be an array of edits or an object with an "edits" array`}
	}

	ops := make([]hashline.Operation, 0, len(items))
	for i, item := range items {
		op, err := decodeEdit(i, item)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func decodeEdit(i int, item gjson.Result) (hashline.Operation, error) {
	if !item.IsObject() {
		return nil, &PayloadError{Reason: fmt.Sprintf("edit %d is not an object", i)}
	}

	var matched []string
	for _, kind := range editKindOrder {
		if item.Get(kind).Exists() {
			matched = append(matched, kind)
		}
	}
	if len(matched) == 0 {
		return nil, &PayloadError{Reason: fmt.Sprintf("edit %d matches none of set_line, replace_lines, insert_after, replace", i)}
	}
	if len(matched) > 1 {
		return nil, &PayloadError{Reason: fmt.Sprintf("edit %d matches more than one kind: %v", i, matched)}
	}

	kind := matched[0]
	body := item.Get(kind)
	if !body.IsObject() {
		return nil, &PayloadError{Reason: fmt.Sprintf("edit %d: %q must be an object", i, kind)}
	}
	for _, field := range editKinds[kind] {
		if !body.Get(field).Exists() {
			return nil, &PayloadError{Reason: fmt.Sprintf("edit %d: %s.%s is required", i, kind, field)}
		}
	}

	switch kind {
	case "set_line":
		var e SetLineEdit
		if err := json.Unmarshal([]byte(body.Raw), &e); err != nil {
			return nil, &PayloadError{Reason: fmt.Sprintf("edit %d: %v", i, err)}
		}
		return hashline.SetLine{Anchor: e.Anchor, NewText: e.NewText}, nil
	case "replace_lines":
		var e ReplaceLinesEdit
		if err := json.Unmarshal([]byte(body.Raw), &e); err != nil {
			return nil, &PayloadError{Reason: fmt.Sprintf("edit %d: %v", i, err)}
		}
		return hashline.ReplaceLines{StartAnchor: e.StartAnchor, EndAnchor: e.EndAnchor, NewText: e.NewText}, nil
	case "insert_after":
		var e InsertAfterEdit
		if err := json.Unmarshal([]byte(body.Raw), &e); err != nil {
			return nil, &PayloadError{Reason: fmt.Sprintf("edit %d: %v", i, err)}
		}
		return hashline.InsertAfter{Anchor: e.Anchor, Text: e.Text}, nil
	default:
		var e ReplaceEdit
		if err := json.Unmarshal([]byte(body.Raw), &e); err != nil {
			return nil, &PayloadError{Reason: fmt.Sprintf("edit %d: %v", i, err)}
		}
		return hashline.ReplaceText{OldText: e.OldText, NewText: e.NewText, All: e.All}, nil
	}
}
