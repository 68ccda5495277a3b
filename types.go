package chat2html

import "time"

// DefaultCharacterName is used for records without a Character field.
const DefaultCharacterName = "GPT_Assistant"

// DefaultTitle is the page title when Input.Title is empty.
const DefaultTitle = "Conversation"

// defaultTimeout bounds PDF rendering when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Role identifies who produced a turn.
type Role string

// Known roles. Wire values map as gpt -> assistant, human -> user,
// system -> system; anything else is RoleOther and is never rendered.
const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
	RoleSystem    Role = "system"
	RoleOther     Role = "other"
)

// RoleFromWire maps the "from" field of a log entry to a Role.
func RoleFromWire(from string) Role {
	switch from {
	case "gpt":
		return RoleAssistant
	case "human":
		return RoleUser
	case "system":
		return RoleSystem
	default:
		return RoleOther
	}
}

// Turn is one role-tagged message. Text is raw lightweight markup.
type Turn struct {
	Role Role
	Text string
}

// CharacterRecord is a named group of turns.
type CharacterRecord struct {
	Name  string
	Turns []Turn
}

// ConversationLog is one parsed input file, in file order.
type ConversationLog []CharacterRecord

// RenderableTurns counts turns that produce a block: a known role and
// non-empty text.
func (r CharacterRecord) RenderableTurns() int {
	n := 0
	for _, t := range r.Turns {
		if t.Text != "" && t.Role != RoleOther {
			n++
		}
	}
	return n
}

// Input contains conversion parameters for one document.
type Input struct {
	Log          []byte // Raw JSON conversation log (required)
	Title        string // Page title (empty = DefaultTitle)
	IncludeImage bool   // Embed the character image in assistant turns
	Image        []byte // PNG bytes (nil with IncludeImage = 1x1 placeholder)
	PDF          bool   // Also render the document to PDF
	BaseDir      string // Directory relative links resolve against in the PDF (empty = unchanged)
}

// ConvertResult holds conversion output.
type ConvertResult struct {
	HTML []byte          // Complete HTML document
	PDF  []byte          // PDF bytes, nil unless Input.PDF was set
	Log  ConversationLog // Parsed log the document was built from
}
