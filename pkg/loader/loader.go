// Package loader reads the records an advq query is applied to.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrEmptyInput is returned when there is nothing to parse.
var ErrEmptyInput = errors.New("empty input")

var (
	tomlSectionPattern  = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// LoadDocuments parses input into documents, auto-detecting the format:
// multi-document YAML, newline-delimited JSON, TOML, JSON, then YAML.
func LoadDocuments(input string) ([]interface{}, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return loadMultiDocYAML(input)
	}

	// A complete JSON document spread over several lines is not NDJSON.
	if (strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[")) && json.Valid([]byte(input)) {
		return decodeOne(input, "JSON", json.Unmarshal)
	}

	if lines := strings.Split(input, "\n"); len(lines) > 1 && isLikelyNDJSON(lines) {
		return loadNDJSON(lines)
	}

	// TOML [section] headers look like JSON arrays, so check TOML first.
	if isLikelyTOML(input) {
		return decodeOne(input, "TOML", toml.Unmarshal)
	}

	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return decodeOne(input, "JSON", json.Unmarshal)
	}

	return decodeOne(input, "YAML", yaml.Unmarshal)
}

// LoadRecords parses input into the list of records to search. A single document
// that is an array contributes its elements; a single map whose only entry is an
// array (for example a TOML [[records]] table) contributes that array; anything
// else is one record per document.
func LoadRecords(input string) ([]interface{}, error) {
	docs, err := LoadDocuments(input)
	if err != nil {
		return nil, err
	}
	if len(docs) != 1 {
		return docs, nil
	}
	switch v := docs[0].(type) {
	case []interface{}:
		return v, nil
	case map[string]interface{}:
		if len(v) == 1 {
			for _, inner := range v {
				if list, ok := inner.([]interface{}); ok {
					return list, nil
				}
			}
		}
	}
	return docs, nil
}

// LoadFile reads records from path, or from r when path is "-".
func LoadFile(path string, r io.Reader) ([]interface{}, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return LoadRecords(string(data))
}

func decodeOne(input, format string, unmarshal func([]byte, any) error) ([]interface{}, error) {
	var data interface{}
	if err := unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", format, err)
	}
	return []interface{}{data}, nil
}

func loadMultiDocYAML(input string) ([]interface{}, error) {
	var results []interface{}
	decoder := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc interface{}
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		if doc != nil {
			results = append(results, doc)
		}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no documents found in multi-document YAML: %w", ErrEmptyInput)
	}
	return results, nil
}

// loadNDJSON keeps lines that are not valid JSON as plain strings.
func loadNDJSON(lines []string) ([]interface{}, error) {
	results := make([]interface{}, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var obj interface{}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			results = append(results, line)
			continue
		}
		results = append(results, obj)
	}
	return results, nil
}

// isLikelyNDJSON requires several lines, most of them starting like JSON.
func isLikelyNDJSON(lines []string) bool {
	jsonCount, nonEmpty := 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}
	return nonEmpty > 1 && jsonCount > nonEmpty/2
}

// isLikelyTOML looks for section headers or a majority of key = value lines.
func isLikelyTOML(input string) bool {
	sections, keyValues, nonEmpty := 0, 0, 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSectionPattern.MatchString(line) {
			sections++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValues++
		}
	}
	return sections > 0 || (nonEmpty > 0 && keyValues > nonEmpty/2)
}
