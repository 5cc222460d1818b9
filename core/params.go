package core

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Param is one key/value pair of a SearchParams list.
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SearchParams is an ordered parameter list that allows repeated keys,
// e.g. several incategory entries. Encoding preserves insertion order.
// The zero value is an empty list ready to use.
type SearchParams struct {
	params []Param
}

// Set replaces the first value stored under key and removes any later
// duplicates. A key not yet present is appended.
func (p *SearchParams) Set(key, value string) {
	idx := -1
	out := p.params[:0]
	for _, kv := range p.params {
		if kv.Key != key {
			out = append(out, kv)
			continue
		}
		if idx >= 0 {
			continue
		}
		idx = len(out)
		out = append(out, Param{Key: key, Value: value})
	}
	p.params = out
	if idx < 0 {
		p.params = append(p.params, Param{Key: key, Value: value})
	}
}

// Add appends a value without touching existing entries for key.
func (p *SearchParams) Add(key, value string) {
	p.params = append(p.params, Param{Key: key, Value: value})
}

// Get returns the first value for key, or "".
func (p *SearchParams) Get(key string) string {
	for _, kv := range p.params {
		if kv.Key == key {
			return kv.Value
		}
	}
	return ""
}

// Has reports whether key is present.
func (p *SearchParams) Has(key string) bool {
	for _, kv := range p.params {
		if kv.Key == key {
			return true
		}
	}
	return false
}

// Values returns every value stored under key in insertion order.
func (p *SearchParams) Values(key string) []string {
	var out []string
	for _, kv := range p.params {
		if kv.Key == key {
			out = append(out, kv.Value)
		}
	}
	return out
}

// Params returns a copy of all pairs in order.
func (p *SearchParams) Params() []Param {
	out := make([]Param, len(p.params))
	copy(out, p.params)
	return out
}

// Len returns the number of pairs.
func (p *SearchParams) Len() int {
	return len(p.params)
}

// Encode form-encodes the pairs in insertion order.
func (p *SearchParams) Encode() string {
	var sb strings.Builder
	for i, kv := range p.params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(kv.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(kv.Value))
	}
	return sb.String()
}

// MarshalJSON encodes the list as an array of key/value objects.
func (p SearchParams) MarshalJSON() ([]byte, error) {
	if p.params == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.params)
}

// UnmarshalJSON decodes an array written by MarshalJSON.
func (p *SearchParams) UnmarshalJSON(data []byte) error {
	var params []Param
	if err := json.Unmarshal(data, &params); err != nil {
		return err
	}
	p.params = params
	return nil
}
