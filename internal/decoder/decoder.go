// Package decoder converts raw layout documents (JSON, or YAML as a
// convenience superset) into the typed model, applying the documented
// field defaults. Absence of an optional field is never an error here;
// semantic problems beyond malformed text are reported as issues for the
// validator pass to weigh.
package decoder

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cotw-fabier/cosboard/pkg/layout"
)

// Decode parses document text into a Layout. The path is used only for
// diagnostics. Malformed text yields a *layout.SyntaxError; well-formed
// text with semantic problems (unknown tags, wrong payload shapes)
// yields issues alongside a best-effort model.
func Decode(data []byte, path string) (layout.Layout, []layout.Issue, error) {
	if looksLikeJSON(data) {
		return decodeJSON(data, path)
	}
	normalized, err := yamlToJSON(data)
	if err != nil {
		return layout.Layout{}, nil, &layout.SyntaxError{Path: path, Line: yamlErrorLine(err), Err: err}
	}
	return decodeJSON(normalized, path)
}

// looksLikeJSON sniffs the first non-space byte. Layout documents are
// objects, so anything not starting with '{' goes through the YAML path
// (YAML is a JSON superset, but the JSON decoder gives better offsets).
func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func decodeJSON(data []byte, path string) (layout.Layout, []layout.Issue, error) {
	var raw rawLayout
	if err := json.Unmarshal(data, &raw); err != nil {
		return layout.Layout{}, nil, &layout.SyntaxError{Path: path, Line: jsonErrorLine(data, err), Err: err}
	}
	conv := &converter{}
	result := conv.layout(raw)
	return result, conv.issues, nil
}

// yamlToJSON re-encodes a YAML document as JSON so both formats share
// one conversion path.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// jsonErrorLine recovers a 1-based line number from the byte offset the
// encoding/json error carries.
func jsonErrorLine(data []byte, err error) int {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var offset int64
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return 0
	}
	if offset < 0 || offset > int64(len(data)) {
		return 0
	}
	return 1 + bytes.Count(data[:offset], []byte{'\n'})
}

var yamlLinePattern = regexp.MustCompile(`line (\d+):`)

// yamlErrorLine pulls the line number out of a yaml.v3 error message,
// which is the only place the library exposes it.
func yamlErrorLine(err error) int {
	match := yamlLinePattern.FindStringSubmatch(err.Error())
	if match == nil {
		return 0
	}
	line, convErr := strconv.Atoi(match[1])
	if convErr != nil {
		return 0
	}
	return line
}
