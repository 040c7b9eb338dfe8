package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDocument(t *testing.T) {
	data, err := DefaultDocument().Encode()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"participants\": [],\n  \"gameState\": {\n    \"status\": \"waiting\"\n  }\n}", string(data))
}

func TestDocument_RoundTripPreservesUnknownFields(t *testing.T) {
	input := `{
		"participants": [{"name": "Ana", "score": 2, "avatar": "cat"}],
		"gameState": {"status": "active", "round": 3},
		"rouletteCategories": ["Sumas"],
		"theme": "dark"
	}`

	doc, err := DecodeDocument([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, StatusActive, doc.GameState.Status)
	assert.JSONEq(t, `3`, string(doc.GameState.Extra["round"]))
	assert.JSONEq(t, `"dark"`, string(doc.Extra["theme"]))

	out, err := doc.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestDocument_KnownFieldsWinOverExtra(t *testing.T) {
	doc := DefaultDocument()
	doc.Extra = map[string]json.RawMessage{"topic": json.RawMessage(`"stale"`), "z": json.RawMessage(`1`)}
	doc.Topic = "fractions"

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"participants":[],"gameState":{"status":"waiting"},"topic":"fractions","z":1}`, string(out))
}

func TestDecodeDocument_Normalizes(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, doc.Participants)
	assert.Equal(t, StatusWaiting, doc.GameState.Status)

	_, err = DecodeDocument([]byte(`[]`))
	assert.Error(t, err)
}

func TestLookupManualEntry(t *testing.T) {
	doc := &Document{ManualEntries: []ManualEntry{{Question: "2+2", Answer: "4"}, {Question: "3x3", Answer: "9"}}}

	entry, ok := doc.LookupManualEntry("3x3")
	assert.True(t, ok)
	assert.Equal(t, "9", entry.Answer)

	_, ok = doc.LookupManualEntry(strings.ToUpper("3x3"))
	assert.False(t, ok, "lookup is an exact match")
}
