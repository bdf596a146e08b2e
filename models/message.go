package models

import (
	"encoding/json"
	"strings"
)

// Message is the envelope most endpoints answer with: msg on success,
// detail on failure. Create-product also returns the new id.
type Message struct {
	Msg    string          `json:"msg,omitempty"`
	ID     string          `json:"id,omitempty"`
	Detail json.RawMessage `json:"detail,omitempty"`
}

// Text returns msg, falling back to the detail text.
func (m Message) Text() string {
	if m.Msg != "" {
		return m.Msg
	}
	return m.DetailText()
}

// DetailText flattens detail into display text. Validation failures carry
// detail as a list of {loc, msg, type} objects; their msgs are joined.
func (m Message) DetailText() string {
	if len(m.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(m.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Loc []interface{} `json:"loc"`
		Msg string        `json:"msg"`
	}
	if err := json.Unmarshal(m.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg == "" {
				continue
			}
			if field := lastLoc(it.Loc); field != "" {
				msgs = append(msgs, field+": "+it.Msg)
			} else {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return string(m.Detail)
}

func lastLoc(loc []interface{}) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok {
		return s
	}
	return ""
}
