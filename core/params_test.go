package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchParamsRepeatedKeys(t *testing.T) {
	var p SearchParams
	p.Add("incategory", "A")
	p.Add("incategory", "B")
	p.Set("search", "x")

	assert.Equal(t, []string{"A", "B"}, p.Values("incategory"))
	assert.Equal(t, "A", p.Get("incategory"))
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "incategory=A&incategory=B&search=x", p.Encode())
}

func TestSearchParamsSet(t *testing.T) {
	var p SearchParams
	p.Add("a", "1")
	p.Add("b", "2")
	p.Add("a", "3")
	p.Set("a", "9")

	assert.Equal(t, []Param{{Key: "a", Value: "9"}, {Key: "b", Value: "2"}}, p.Params())

	p.Set("c", "4")
	assert.Equal(t, "a=9&b=2&c=4", p.Encode())
	assert.True(t, p.Has("c"))
	assert.False(t, p.Has("d"))
	assert.Empty(t, p.Get("d"))
}

func TestSearchParamsEncodeEscapes(t *testing.T) {
	var p SearchParams
	p.Set("search", `"big bang" -film`)
	assert.Equal(t, "search=%22big+bang%22+-film", p.Encode())
}

func TestSearchParamsJSON(t *testing.T) {
	var empty SearchParams
	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	var p SearchParams
	p.Add("ns0", "1")
	p.Add("ns14", "1")
	data, err = json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"ns0","value":"1"},{"key":"ns14","value":"1"}]`, string(data))

	var decoded SearchParams
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p, decoded)
}
