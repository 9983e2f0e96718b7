// Package session loads, discovers, and rewrites Claude Code JSONL
// session transcripts.
package session

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Record is the decoded view of one transcript line. A line that fails
// JSON decoding, or carries no top-level "type", is opaque: Type is ""
// and every derived field is zero. Opaque lines are a normal outcome,
// not an error, and are always preserved verbatim by the transform.
type Record struct {
	Position int    // 0-based index into the full line sequence
	Type     string // top-level discriminant; "" for opaque lines

	Role      string
	Text      string   // flattened textual content
	ToolNames []string // tool_use block names, in order
	ToolErr   bool     // any tool_result block flagged is_error
	APIErr    bool     // entry flagged isApiErrorMessage
	Timestamp time.Time
}

// IsTurn reports whether the record is a conversational turn. Position 0
// is session metadata and is never a turn regardless of its discriminant.
func (r Record) IsTurn() bool {
	if r.Position == 0 {
		return false
	}
	switch r.Type {
	case "user", "assistant", "system":
		return true
	}
	return false
}

// entry mirrors the transcript fields the classifier needs. Everything
// else on the line is carried by the raw bytes, not re-encoded.
type entry struct {
	Type              string          `json:"type"`
	Timestamp         string          `json:"timestamp,omitempty"`
	IsAPIErrorMessage bool            `json:"isApiErrorMessage,omitempty"`
	Message           *messageBody    `json:"message,omitempty"`
	ToolUseResult     json.RawMessage `json:"toolUseResult,omitempty"`
	Content           json.RawMessage `json:"content,omitempty"`
}

type messageBody struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// contentBlock is one element of a block-array content field.
type contentBlock struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	Thinking string          `json:"thinking,omitempty"`
	Name     string          `json:"name,omitempty"`
	IsError  bool            `json:"is_error,omitempty"`
	Content  json.RawMessage `json:"content,omitempty"`
}

// DecodeLine decodes one transcript line into a Record. It never fails:
// malformed input yields an opaque record.
func DecodeLine(pos int, raw []byte) Record {
	r := Record{Position: pos}

	typ := extractTopLevelType(raw)
	if typ == "" {
		return r
	}

	switch typ {
	case "user", "assistant", "system":
		var e entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return r // scanned a type but the line as a whole is broken
		}
		r.Type = typ
		r.Role = typ
		if e.Message != nil && e.Message.Role != "" {
			r.Role = e.Message.Role
		}
		r.APIErr = e.IsAPIErrorMessage
		if e.Timestamp != "" {
			if ts, err := time.Parse(time.RFC3339Nano, e.Timestamp); err == nil {
				r.Timestamp = ts
			}
		}

		content := e.Content
		if e.Message != nil && len(e.Message.Content) > 0 {
			content = e.Message.Content
		}
		r.Text, r.ToolNames, r.ToolErr = flattenContent(content)
		if !r.ToolErr {
			r.ToolErr = toolResultHasError(e.ToolUseResult)
		}
	default:
		r.Type = typ
	}

	return r
}

// flattenContent collapses a content field (plain string or block array)
// into searchable text plus the tool invocations it carries.
func flattenContent(content json.RawMessage) (text string, toolNames []string, toolErr bool) {
	if len(content) == 0 {
		return "", nil, false
	}

	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s, nil, false
	}

	var blocks []contentBlock
	if err := json.Unmarshal(content, &blocks); err != nil {
		return "", nil, false
	}

	var b strings.Builder
	for _, blk := range blocks {
		switch blk.Type {
		case "text":
			appendText(&b, blk.Text)
		case "thinking":
			appendText(&b, blk.Thinking)
		case "tool_use":
			if blk.Name != "" {
				toolNames = append(toolNames, blk.Name)
			}
		case "tool_result":
			if blk.IsError {
				toolErr = true
			}
			// tool_result content is itself a string or nested text blocks
			inner, _, _ := flattenContent(blk.Content)
			appendText(&b, inner)
		}
	}
	return b.String(), toolNames, toolErr
}

func appendText(b *strings.Builder, s string) {
	if s == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(s)
}

// toolResultHasError reports whether a top-level toolUseResult payload
// marks a failure. The field is a plain string on some error shapes and
// an object with an "error" key on others.
func toolResultHasError(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var obj struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	return len(obj.Error) > 0 && !bytes.Equal(obj.Error, []byte("null"))
}

// typeKey is the byte sequence for a JSON key named "type" (with quotes).
var typeKey = []byte(`"type"`)

// extractTopLevelType finds the top-level "type" field in a JSONL line.
// Tracks brace depth and string boundaries so nested "type" keys are
// ignored. Early-exits once found, making cost O(1) vs line length.
func extractTopLevelType(line []byte) string {
	depth := 0
	for i := 0; i < len(line); {
		switch line[i] {
		case '"':
			if depth == 1 && bytes.HasPrefix(line[i:], typeKey) {
				val, isKey := typeValueAt(line, i+len(typeKey))
				if isKey {
					return val // found the "type" key, done regardless of value
				}
				// "type" appeared as a value, not a key. Continue scanning.
			}
			i = skipJSONString(line, i)
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
		default:
			i++
		}
	}
	return ""
}

// typeValueAt checks whether pos follows a JSON key (expects : then value).
// Returns the string value and whether this was a valid key:value pair.
// isKey=false means "type" appeared as a value and the caller should
// continue scanning.
func typeValueAt(line []byte, pos int) (val string, isKey bool) {
	i := skipSpaces(line, pos)
	if i >= len(line) || line[i] != ':' {
		return "", false // no colon, this was a value, not a key
	}
	i = skipSpaces(line, i+1)
	if i >= len(line) || line[i] != '"' {
		return "", true // key with non-string value (null, number, etc.)
	}
	i++ // past opening quote

	end := bytes.IndexByte(line[i:], '"')
	if end < 0 || end > 30 {
		return "", true
	}
	return string(line[i : i+end]), true
}

// skipJSONString advances past a JSON string starting at the opening quote.
func skipJSONString(line []byte, i int) int {
	i++ // skip opening quote
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return i
}

func skipSpaces(line []byte, i int) int {
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i
}
