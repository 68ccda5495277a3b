package chat2html

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

type wireRecord struct {
	Character     *string    `json:"Character"`
	Conversations []wireTurn `json:"conversations"`
}

type wireTurn struct {
	From  string          `json:"from"`
	Value json.RawMessage `json:"value"`
}

// ParseLog decodes a conversation log: a JSON array of records with an
// optional "Character" name and an optional "conversations" list of
// {"from", "value"} turns. Unknown fields are ignored.
func ParseLog(data []byte) (ConversationLog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	var records []wireRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseLog, err)
	}

	log := make(ConversationLog, 0, len(records))
	for _, rec := range records {
		name := DefaultCharacterName
		if rec.Character != nil && *rec.Character != "" {
			name = *rec.Character
		}
		turns := make([]Turn, 0, len(rec.Conversations))
		for _, t := range rec.Conversations {
			turns = append(turns, Turn{Role: RoleFromWire(t.From), Text: valueText(t.Value)})
		}
		log = append(log, CharacterRecord{Name: name, Turns: turns})
	}
	return log, nil
}

// LoadLog reads and parses a conversation log file.
func LoadLog(path string) (ConversationLog, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input path
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseLog(data)
}

// valueText returns the text of a turn value. Strings are used as is.
// Falsy values (null, false, 0, "") yield "", which skips the turn.
// Other scalars and containers keep their JSON text.
func valueText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	switch text := string(bytes.TrimSpace(raw)); text {
	case "null", "false", "0", "[]", "{}":
		return ""
	default:
		return text
	}
}
