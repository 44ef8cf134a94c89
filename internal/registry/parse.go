package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/quickcode-ui/quickcode/internal/errors"
)

// document mirrors the JSON form of the component map. HOOK_BASE_URL is the
// constant name used by the script form and is accepted as an alias.
type document struct {
	HookBaseURL      string               `json:"hookBaseUrl"`
	HookBaseURLConst string               `json:"HOOK_BASE_URL"`
	Components       map[string]Component `json:"components"`
}

var (
	hookBaseRe   = regexp.MustCompile(`\bHOOK_BASE_URL\s*=\s*("(?:[^"\\]|\\.)*")`)
	componentsRe = regexp.MustCompile(`\bcomponents\s*=\s*\{`)
)

// Parse decodes a component map in JSON or script form.
func Parse(data []byte) (*Registry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("E105").WithDetail("empty document")
	}

	var reg *Registry
	var err error
	if trimmed[0] == '{' {
		reg, err = parseJSON(trimmed)
	} else {
		reg, err = parseScript(trimmed)
	}
	if err != nil {
		return nil, err
	}

	for name, comp := range reg.Components {
		if comp.URL == "" {
			return nil, errors.New("E105").
				WithDetailf("component %q has no url", name)
		}
		if comp.Deps == nil {
			comp.Deps = map[string]string{}
		}
		reg.Components[name] = comp
	}
	return reg, nil
}

func parseJSON(data []byte) (*Registry, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("E105").Wrap(err)
	}
	if doc.Components == nil {
		return nil, errors.New("E105").WithDetail(`missing "components"`)
	}

	base := doc.HookBaseURL
	if base == "" {
		base = doc.HookBaseURLConst
	}
	return &Registry{HookBaseURL: base, Components: doc.Components}, nil
}

// parseScript extracts HOOK_BASE_URL and the components object literal from
// an ES module. The literal is normalized (comments dropped, strings
// re-quoted, trailing commas removed) and then decoded as a YAML flow
// mapping, which accepts the unquoted keys JavaScript allows.
func parseScript(data []byte) (*Registry, error) {
	src, err := normalizeScript(string(data))
	if err != nil {
		return nil, errors.New("E105").Wrap(err)
	}

	reg := &Registry{}
	if m := hookBaseRe.FindStringSubmatch(src); m != nil {
		base, err := strconv.Unquote(m[1])
		if err != nil {
			return nil, errors.New("E105").Wrap(err)
		}
		reg.HookBaseURL = base
	}

	loc := componentsRe.FindStringIndex(src)
	if loc == nil {
		return nil, errors.New("E105").
			WithDetail("no components object found in script")
	}
	literal, err := objectLiteral(src, loc[1]-1)
	if err != nil {
		return nil, errors.New("E105").Wrap(err)
	}
	// Flow content on continuation lines must not sit at column 0.
	literal = strings.ReplaceAll(literal, "\n", "\n  ")

	if err := yaml.Unmarshal([]byte(literal), &reg.Components); err != nil {
		return nil, errors.New("E105").Wrap(err)
	}
	if reg.Components == nil {
		reg.Components = map[string]Component{}
	}
	return reg, nil
}

// objectLiteral returns the balanced {...} starting at src[start]. src must
// already be normalized so every string is double-quoted.
func objectLiteral(src string, start int) (string, error) {
	depth := 0
	inString := false
	for i := start; i < len(src); i++ {
		c := src[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unterminated object literal")
}

// normalizeScript rewrites JavaScript source into a form the YAML flow
// parser accepts. Comments are removed, every string literal becomes a Go
// double-quoted string, unquoted object keys are quoted, a space follows
// each colon and trailing commas before } or ] are dropped.
func normalizeScript(src string) (string, error) {
	var out []byte
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return "", fmt.Errorf("unterminated comment")
			}
			i += end + 4
			out = append(out, ' ')
		case c == '"' || c == '\'' || c == '`':
			s, n, err := readJSString(src[i:])
			if err != nil {
				return "", err
			}
			out = append(out, strconv.Quote(s)...)
			i += n
		case c == ':':
			out = quoteBareKey(out)
			out = append(out, ':', ' ')
			i++
		case c == '}' || c == ']':
			out = dropTrailingComma(out)
			out = append(out, c)
			i++
		default:
			out = append(out, c)
			i++
		}
	}
	return string(out), nil
}

// quoteBareKey quotes the unquoted object key that ends out, so YAML never
// resolves keys such as null, ~ or true to non-string values.
func quoteBareKey(out []byte) []byte {
	end := len(out)
	for end > 0 && isSpace(out[end-1]) {
		end--
	}
	start := end
	for start > 0 && !isSpace(out[start-1]) && !strings.ContainsRune(`{},[]:"`, rune(out[start-1])) {
		start--
	}
	if start == end {
		return out
	}

	before := start
	for before > 0 && isSpace(out[before-1]) {
		before--
	}
	if before > 0 && out[before-1] != '{' && out[before-1] != ',' {
		return out
	}

	key := strconv.Quote(string(out[start:end]))
	return append(out[:start], key...)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func dropTrailingComma(out []byte) []byte {
	j := len(out) - 1
	for j >= 0 && isSpace(out[j]) {
		j--
	}
	if j >= 0 && out[j] == ',' {
		return append(out[:j], out[j+1:]...)
	}
	return out
}

// readJSString decodes the string literal at the start of s and returns its
// value and the number of bytes consumed.
func readJSString(s string) (string, int, error) {
	quote := s[0]
	var b strings.Builder
	for i := 1; i < len(s); {
		c := s[i]
		switch {
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\n' && quote != '`':
			return "", 0, fmt.Errorf("unterminated string literal")
		case c == '$' && quote == '`' && i+1 < len(s) && s[i+1] == '{':
			return "", 0, fmt.Errorf("template literal interpolation is not supported")
		case c == '\\' && i+1 < len(s):
			r, n, err := jsEscape(s[i+1:])
			if err != nil {
				return "", 0, err
			}
			if r >= 0 {
				b.WriteRune(r)
			}
			i += 1 + n
		default:
			r, size := utf8.DecodeRuneInString(s[i:])
			b.WriteRune(r)
			i += size
		}
	}
	return "", 0, fmt.Errorf("unterminated string literal")
}

// jsEscape decodes the escape sequence following a backslash. A negative
// rune means the sequence produces no character (a line continuation).
func jsEscape(s string) (rune, int, error) {
	switch s[0] {
	case 'n':
		return '\n', 1, nil
	case 't':
		return '\t', 1, nil
	case 'r':
		return '\r', 1, nil
	case 'b':
		return '\b', 1, nil
	case 'f':
		return '\f', 1, nil
	case 'v':
		return '\v', 1, nil
	case '0':
		return 0, 1, nil
	case '\n':
		return -1, 1, nil
	case 'x':
		if len(s) < 3 {
			return 0, 0, fmt.Errorf("bad \\x escape")
		}
		v, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return 0, 0, fmt.Errorf("bad \\x escape: %w", err)
		}
		return rune(v), 3, nil
	case 'u':
		if len(s) < 5 {
			return 0, 0, fmt.Errorf("bad \\u escape")
		}
		v, err := strconv.ParseUint(s[1:5], 16, 16)
		if err != nil {
			return 0, 0, fmt.Errorf("bad \\u escape: %w", err)
		}
		return rune(v), 5, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	return r, size, nil
}
