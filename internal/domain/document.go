package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// GameStatus - статус игры в документе состояния.
type GameStatus string

const (
	StatusWaiting GameStatus = "waiting"
	StatusActive  GameStatus = "active"
	StatusEnded   GameStatus = "ended"
)

// Palette - фиксированная палитра рулетки. Индексы совпадают с секторами UI.
var Palette = []string{"#4a90e2", "#50e3c2", "#f5a623", "#bd10e0", "#9013fe", "#e74c3c"}

// ManualEntry - вопрос, заранее заведённый администратором.
// Ответ может прийти строкой или числом; число записывается обратно числом.
type ManualEntry struct {
	Question string                     `json:"question"`
	Answer   string                     `json:"answer"`
	Extra    map[string]json.RawMessage `json:"-"`

	numericAnswer bool
}

// GameInfo is the nested "gameState" object of the document.
type GameInfo struct {
	Status GameStatus                 `json:"status"`
	Extra  map[string]json.RawMessage `json:"-"`
}

// Document is the persisted GameState document.
// Participant records are owned by the clients and stored verbatim.
type Document struct {
	Participants       []json.RawMessage          `json:"participants"`
	GameState          GameInfo                   `json:"gameState"`
	RouletteCategories []string                   `json:"rouletteCategories,omitempty"`
	Colors             []string                   `json:"colors,omitempty"`
	CurrentQuestion    string                     `json:"currentQuestion,omitempty"`
	ManualEntries      []ManualEntry              `json:"manualEntries,omitempty"`
	Topic              string                     `json:"topic,omitempty"`
	Extra              map[string]json.RawMessage `json:"-"`
}

var (
	documentKeys    = []string{"participants", "gameState", "rouletteCategories", "colors", "currentQuestion", "manualEntries", "topic"}
	gameInfoKeys    = []string{"status"}
	manualEntryKeys = []string{"question", "answer"}
)

// DefaultDocument возвращает начальный документ: {participants: [], gameState: {status: waiting}}.
func DefaultDocument() *Document {
	return &Document{
		Participants: []json.RawMessage{},
		GameState:    GameInfo{Status: StatusWaiting},
	}
}

// Normalize enforces the always-present fields.
func (d *Document) Normalize() {
	if d.Participants == nil {
		d.Participants = []json.RawMessage{}
	}
	if d.GameState.Status == "" {
		d.GameState.Status = StatusWaiting
	}
}

// LookupManualEntry ищет заведённый вопрос по точному совпадению текста.
func (d *Document) LookupManualEntry(question string) (ManualEntry, bool) {
	for _, e := range d.ManualEntries {
		if e.Question == question {
			return e, true
		}
	}
	return ManualEntry{}, false
}

// Encode returns the document as 2-space indented JSON, the stored format.
func (d *Document) Encode() ([]byte, error) {
	d.Normalize()
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode game state: %w", err)
	}
	return data, nil
}

// DecodeDocument parses stored document content.
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode game state: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	if d.Participants == nil {
		d.Participants = []json.RawMessage{}
	}
	return marshalWithExtra(plain(d), d.Extra)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	all, err := rawFields(data)
	if err != nil {
		return err
	}
	*d = Document(p)
	d.Extra = withoutKeys(all, documentKeys)

	// Пустые значения omitempty-полей пишутся обратно как пришли.
	for _, key := range documentKeys {
		raw, ok := all[key]
		if !ok || !d.emptyField(key) {
			continue
		}
		if d.Extra == nil {
			d.Extra = map[string]json.RawMessage{}
		}
		d.Extra[key] = raw
	}
	return nil
}

// emptyField reports whether an omitempty field would be dropped on encode.
func (d *Document) emptyField(key string) bool {
	switch key {
	case "rouletteCategories":
		return len(d.RouletteCategories) == 0
	case "colors":
		return len(d.Colors) == 0
	case "currentQuestion":
		return d.CurrentQuestion == ""
	case "manualEntries":
		return len(d.ManualEntries) == 0
	case "topic":
		return d.Topic == ""
	default:
		return false
	}
}

func (g GameInfo) MarshalJSON() ([]byte, error) {
	type plain GameInfo
	return marshalWithExtra(plain(g), g.Extra)
}

func (g *GameInfo) UnmarshalJSON(data []byte) error {
	type plain GameInfo
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	all, err := rawFields(data)
	if err != nil {
		return err
	}
	*g = GameInfo(p)
	g.Extra = withoutKeys(all, gameInfoKeys)
	return nil
}

func (e ManualEntry) MarshalJSON() ([]byte, error) {
	if !e.numericAnswer {
		type plain ManualEntry
		return marshalWithExtra(plain(e), e.Extra)
	}
	return marshalWithExtra(struct {
		Question string      `json:"question"`
		Answer   json.Number `json:"answer"`
	}{e.Question, json.Number(e.Answer)}, e.Extra)
}

func (e *ManualEntry) UnmarshalJSON(data []byte) error {
	var p struct {
		Question string          `json:"question"`
		Answer   json.RawMessage `json:"answer"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	all, err := rawFields(data)
	if err != nil {
		return err
	}
	*e = ManualEntry{Question: p.Question, Extra: withoutKeys(all, manualEntryKeys)}

	answer := bytes.TrimSpace(p.Answer)
	switch {
	case len(answer) == 0 || bytes.Equal(answer, []byte("null")):
	case answer[0] == '"':
		return json.Unmarshal(answer, &e.Answer)
	default:
		var n json.Number
		if err := json.Unmarshal(answer, &n); err != nil {
			return fmt.Errorf("manual entry answer must be a string or a number: %w", err)
		}
		e.Answer = n.String()
		e.numericAnswer = true
	}
	return nil
}

// marshalWithExtra appends the unknown keys after the known ones.
// Known keys win on collision.
func marshalWithExtra(known any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Write(bytes.TrimSuffix(data, []byte("}")))
	for _, key := range slices.Sorted(maps.Keys(extra)) {
		if _, ok := fields[key]; ok {
			continue
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(extra[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func rawFields(data []byte) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// withoutKeys returns the fields not listed in known, or nil when none are left.
func withoutKeys(all map[string]json.RawMessage, known []string) map[string]json.RawMessage {
	var extra map[string]json.RawMessage
	for k, v := range all {
		if slices.Contains(known, k) {
			continue
		}
		if extra == nil {
			extra = map[string]json.RawMessage{}
		}
		extra[k] = v
	}
	return extra
}
