package content

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v2"
)

// DateLayout is the calendar date format written by EncodeFrontMatter.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
}

var (
	ErrMissingDate  = errors.New("missing date")
	ErrInvalidDate  = errors.New("invalid date")
	ErrMissingTitle = errors.New("missing title")
)

// Metadata is the decoded front matter block. Values keep the types the
// decoder produced; use the accessors for the well-known keys.
type Metadata map[string]any

// ParseFrontMatter splits raw into its metadata block and body. Input with no
// recognised block yields empty metadata and raw as the body.
func ParseFrontMatter(raw []byte) (Metadata, []byte, error) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))

	var data map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(raw), &data)
	if err != nil {
		return nil, nil, fmt.Errorf("malformed front matter: %w", err)
	}

	meta := make(Metadata, len(data))
	for k, v := range data {
		meta[k] = normalizeValue(v)
	}
	return meta, body, nil
}

// normalizeValue turns yaml.v2 map[interface{}]interface{} nodes into
// map[string]any so templates and JSON encoders can use them.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeValue(val)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return v
	}
}

// String returns the value of key as a trimmed string. Non-string scalars are
// formatted; missing keys and sequences give "".
func (m Metadata) String(key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		return v.Format(DateLayout)
	case []any, map[string]any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Strings returns a sequence value. A plain string is split on commas so
// `tags: go, web` and `tags: [go, web]` mean the same thing. Blank items are
// dropped.
func (m Metadata) Strings(key string) []string {
	var raw []string
	switch v := m[key].(type) {
	case nil:
		return nil
	case string:
		raw = strings.Split(v, ",")
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			if item == nil {
				continue
			}
			raw = append(raw, fmt.Sprint(item))
		}
	default:
		raw = []string{fmt.Sprint(v)}
	}

	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Bool reports whether key holds true or "true".
func (m Metadata) Bool(key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	}
	return false
}

// Time parses the value of key as a date. YAML timestamps and the layouts in
// dateLayouts are accepted.
func (m Metadata) Time(key string) (time.Time, error) {
	switch v := m[key].(type) {
	case nil:
		return time.Time{}, ErrMissingDate
	case time.Time:
		return v, nil
	case string:
		return ParseDate(v)
	default:
		return ParseDate(fmt.Sprint(v))
	}
}

// ParseDate accepts the date formats allowed in front matter.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q: use YYYY-MM-DD or RFC3339", ErrInvalidDate, s)
}

// EncodeFrontMatter writes meta as a YAML block followed by body. Dates are
// written as calendar dates so ParseFrontMatter reads back the same values.
// Keys are emitted with title and date first, then alphabetically.
func EncodeFrontMatter(meta Metadata, body []byte) ([]byte, error) {
	ms := make(yaml.MapSlice, 0, len(meta))
	for _, k := range orderedKeys(meta) {
		v := meta[k]
		if t, ok := v.(time.Time); ok {
			v = t.Format(DateLayout)
		}
		ms = append(ms, yaml.MapItem{Key: k, Value: v})
	}

	block, err := yaml.Marshal(ms)
	if err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(block)
	buf.WriteString("---\n")
	if len(body) > 0 {
		buf.WriteString("\n")
		buf.Write(body)
	}
	return buf.Bytes(), nil
}

func orderedKeys(meta Metadata) []string {
	rank := map[string]int{"title": 0, "date": 1}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, iok := rank[keys[i]]
		rj, jok := rank[keys[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		}
		return keys[i] < keys[j]
	})
	return keys
}
