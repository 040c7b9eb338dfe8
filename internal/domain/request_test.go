package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUpdateRequest(t *testing.T) {
	t.Run("Strips transient fields", func(t *testing.T) {
		req, err := DecodeUpdateRequest([]byte(`{"action":"generateQuestion","category":"sums","topic":"fractions","gameState":{"status":"active"}}`))
		require.NoError(t, err)

		assert.Equal(t, ActionGenerateQuestion, req.Action)
		assert.Equal(t, "sums", req.Category)

		out, err := req.Document().Encode()
		require.NoError(t, err)
		var persisted map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(out, &persisted))
		assert.NotContains(t, persisted, "action")
		assert.NotContains(t, persisted, "category")
		assert.JSONEq(t, `"fractions"`, string(persisted["topic"]))
		assert.JSONEq(t, `[]`, string(persisted["participants"]))
	})

	t.Run("Missing action is allowed", func(t *testing.T) {
		req, err := DecodeUpdateRequest([]byte(`{"participants":[{"name":"Ana"}]}`))
		require.NoError(t, err)
		assert.Empty(t, req.Action)
		assert.Len(t, req.Document().Participants, 1)
	})

	t.Run("Invalid input", func(t *testing.T) {
		for _, body := range []string{`not json`, `{"action":5}`, `{"category":["a"]}`, `{"participants":{}}`} {
			_, err := DecodeUpdateRequest([]byte(body))
			assert.ErrorIs(t, err, ErrInvalidRequest, body)
		}
	})

	t.Run("Works with json.Unmarshal", func(t *testing.T) {
		var req UpdateRequest
		require.NoError(t, json.Unmarshal([]byte(`{"action":"reset"}`), &req))
		assert.Equal(t, ActionReset, req.Action)
		assert.Equal(t, StatusWaiting, req.Document().GameState.Status)
	})
}

func TestDecodeUpdateRequest_KeepsEmptyFields(t *testing.T) {
	req, err := DecodeUpdateRequest([]byte(`{"action":"reset","participants":[],"gameState":{"status":"waiting"},"rouletteCategories":[],"colors":[],"currentQuestion":"","manualEntries":[],"topic":""}`))
	require.NoError(t, err)

	out, err := req.Document().Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"participants": [],
		"gameState": {"status": "waiting"},
		"rouletteCategories": [],
		"colors": [],
		"currentQuestion": "",
		"manualEntries": [],
		"topic": ""
	}`, string(out))
}

func TestDecodeUpdateRequest_FilledFieldReplacesEmptyInput(t *testing.T) {
	req, err := DecodeUpdateRequest([]byte(`{"action":"startGame","rouletteCategories":[],"colors":[]}`))
	require.NoError(t, err)

	doc := req.Document()
	doc.RouletteCategories = []string{"Sumas"}
	doc.Colors = Palette

	out, err := doc.Encode()
	require.NoError(t, err)
	var persisted map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &persisted))
	assert.JSONEq(t, `["Sumas"]`, string(persisted["rouletteCategories"]))
	assert.JSONEq(t, `["#4a90e2","#50e3c2","#f5a623","#bd10e0","#9013fe","#e74c3c"]`, string(persisted["colors"]))
}

func TestDecodeUpdateRequest_NumericManualAnswer(t *testing.T) {
	req, err := DecodeUpdateRequest([]byte(`{"action":"generateQuestion","category":"2+2","manualEntries":[{"question":"2+2","answer":4},{"question":"1/2","answer":"0,5","hint":"mitad"}]}`))
	require.NoError(t, err)

	entry, ok := req.Document().LookupManualEntry("2+2")
	require.True(t, ok)
	assert.Equal(t, "4", entry.Answer)

	out, err := req.Document().Encode()
	require.NoError(t, err)
	var persisted struct {
		ManualEntries json.RawMessage `json:"manualEntries"`
	}
	require.NoError(t, json.Unmarshal(out, &persisted))
	assert.JSONEq(t, `[{"question":"2+2","answer":4},{"question":"1/2","answer":"0,5","hint":"mitad"}]`, string(persisted.ManualEntries))
}

func TestDecodeUpdateRequest_InvalidManualAnswer(t *testing.T) {
	_, err := DecodeUpdateRequest([]byte(`{"manualEntries":[{"question":"2+2","answer":true}]}`))
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
