package quizgen

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// LLM output is unstructured text that usually, but not always, contains
// the requested JSON. ExtractJSON runs a short pipeline of increasingly
// forgiving parse attempts instead of trusting the raw text:
//
//  1. parse the text as-is
//  2. strip Markdown code fences and parse
//  3. slice from the first '{' or '[' to the last matching '}' or ']'
//  4. repair trailing commas before closing brackets and parse
//
// The pipeline is deliberately heuristic; the content it cleans up is
// itself heuristic.
func ExtractJSON(text string) (json.RawMessage, error) {
	candidates := []string{
		strings.TrimSpace(text),
		stripCodeFences(text),
		sliceBrackets(text),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		if raw, ok := tryParse(c); ok {
			return raw, nil
		}
		if raw, ok := tryParse(repairTrailingCommas(c)); ok {
			return raw, nil
		}
	}

	return nil, fmt.Errorf("no parseable JSON in response (%d bytes)", len(text))
}

func tryParse(s string) (json.RawMessage, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return json.RawMessage(s), true
}

var codeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// stripCodeFences returns the content of the first fenced block, or ""
// when the text has no fences.
func stripCodeFences(text string) string {
	m := codeFence.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// sliceBrackets cuts the substring from the first opening bracket to the
// last closing bracket of the same kind.
func sliceBrackets(text string) string {
	objStart := strings.IndexByte(text, '{')
	arrStart := strings.IndexByte(text, '[')

	start, closer := objStart, byte('}')
	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		start, closer = arrStart, ']'
	}
	if start == -1 {
		return ""
	}

	end := strings.LastIndexByte(text, closer)
	if end <= start {
		return ""
	}
	return text[start : end+1]
}

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// repairTrailingCommas removes commas immediately preceding a closing
// brace or bracket, a common LLM formatting slip.
func repairTrailingCommas(s string) string {
	return trailingComma.ReplaceAllString(s, "$1")
}
