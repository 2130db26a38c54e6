// Package utils contains JSON post-processing helpers for untrusted model
// output: locating a JSON object inside prose and coercing near-JSON into
// something encoding/json accepts.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ExtractJSONObject returns the first balanced JSON object found in text.
// Unlike a first-'{' / last-'}' substring scan, the brace-depth walk is not
// confused by braces appearing in surrounding prose or inside string values.
func ExtractJSONObject(text string) (string, bool) {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}
		if end, ok := scanBalanced(text, start); ok {
			return text[start : end+1], true
		}
	}
	return "", false
}

// scanBalanced walks from an opening brace tracking depth, string literals
// and escapes; returns the index of the matching closing brace.
func scanBalanced(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return i, true
				}
			}
		}
	}
	return 0, false
}

// RepairJSON attempts to fix common JSON errors in LLM output: missing
// quotes around keys, single quotes, unclosed brackets, trailing commas,
// markdown code fences.
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// SmartParse tries multiple parsing strategies to load input into schema.
// Order of attempts:
// 1. Standard JSON parse
// 2. JSON repair
// 3. Hjson parse (most lenient)
func SmartParse(input string, schema interface{}) (string, error) {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return input, nil
	}

	repaired, err := RepairJSON(input)
	if err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return repaired, nil
		}
	}

	var lenient interface{}
	if err := hjson.Unmarshal([]byte(input), &lenient); err == nil {
		if normalized, err := json.Marshal(lenient); err == nil {
			if err := json.Unmarshal(normalized, schema); err == nil {
				return string(normalized), nil
			}
		}
	}

	return "", fmt.Errorf("SMART_PARSE_FAILED: all parsing strategies failed")
}
