// Package jsonrepair recovers JSON objects from free-text model output.
// Model responses frequently wrap JSON in markdown fences, prepend prose,
// emit trailing commas, or get truncated mid-object; this package strips
// the noise and applies small structural repairs before decoding.
package jsonrepair

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Extract parses a single JSON object out of raw model output.
// It strips markdown code fences, trims any non-JSON prefix/suffix,
// removes trailing commas and, if plain decoding still fails, attempts
// to close truncated strings, arrays and objects before decoding again.
// Returns an error when no object can be recovered.
func Extract(raw string) (map[string]interface{}, error) {
	s := Normalize(raw)
	if s == "" {
		return nil, fmt.Errorf("no JSON content found in response")
	}
	s = stripTrailingCommas(s)

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err == nil {
		return obj, nil
	}

	repaired := closeTruncated(s)
	repaired = stripTrailingCommas(repaired)
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from response: %w", err)
	}
	return obj, nil
}

// ExtractLenient behaves like Extract but never fails: when no object can
// be recovered it returns an empty map. Intended for call sites that have
// their own fallback content and must not propagate parse errors.
func ExtractLenient(raw string) map[string]interface{} {
	obj, err := Extract(raw)
	if err != nil {
		return map[string]interface{}{}
	}
	return obj
}

// Normalize strips markdown code fences (``` or ```json) and trims any
// non-JSON prefix/suffix around the outermost braces. The result still may
// not be valid JSON; it is only positioned to start at the object.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if strings.HasPrefix(s, "```") {
		// Drop the opening fence line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = ""
		}
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	s = s[start:]

	// Keep everything through the last closing brace; a truncated object
	// has none, in which case the repair step closes it.
	if end := strings.LastIndex(s, "}"); end >= 0 {
		s = s[:end+1]
	}
	return strings.TrimSpace(s)
}

// stripTrailingCommas removes commas that directly precede } or ].
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}
		if c == ',' {
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\n' || s[j] == '\r' || s[j] == '\t') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// closeTruncated best-effort closes a JSON object that was cut off
// mid-stream: unterminated strings get a closing quote, dangling keys get
// a null value, and unclosed arrays/objects are closed in nesting order.
func closeTruncated(s string) string {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}':
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	var b strings.Builder
	b.WriteString(s)
	if inString {
		b.WriteByte('"')
	}

	// A value cut off right after a key or comma would still be invalid;
	// patch the dangling token before closing the containers.
	tail := strings.TrimRight(b.String(), " \n\r\t")
	if strings.HasSuffix(tail, ":") {
		tail += "null"
	} else if strings.HasSuffix(tail, ",") {
		tail = tail[:len(tail)-1]
	}

	var out strings.Builder
	out.WriteString(tail)
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			out.WriteByte('}')
		} else {
			out.WriteByte(']')
		}
	}
	return out.String()
}
