package llm

import "strings"

// CleanJSONBlock strips markdown fences and any conversational text around
// the first JSON object in a model response. Text without an object is
// returned trimmed so callers see the original parse error.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Drop a language tag such as "json" on the fence line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			tag := strings.TrimSpace(text[:idx])
			if len(tag) < 20 && !strings.ContainsAny(tag, " {[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	if start < 0 {
		return text
	}
	if obj := matchObject(text[start:]); obj != "" {
		return obj
	}
	return text
}

// matchObject returns the balanced JSON object at the start of s, honoring
// string literals and escapes. It returns "" when the object never closes.
func matchObject(s string) string {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
