package session

import (
	"strings"

	"driftwatch/internal/api"
)

// Role is a transcript role as shown in the UI. On the wire the assistant
// role is renamed to "model"; see WireHistory.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of the conversation transcript.
type Turn struct {
	Role    Role
	Content string
}

// ConnectionErrorReply is appended as an assistant turn when a chat request
// fails. Errors are conversation content: the transcript is the single
// source of truth for what the user has seen.
const ConnectionErrorReply = "Connection error. Please try again."

// followUpPrompts are the static suggested follow-ups. Selecting one is the
// same as typing it.
var followUpPrompts = []string{
	"What is the single quickest win?",
	"Which category should we tackle first?",
	"Project the drift six months out.",
}

// Conversation owns the ordered, append-only transcript and the
// single-flight send discipline. Turns are never edited or removed except
// by Seed and Clear, which replace the transcript wholesale.
type Conversation struct {
	turns    []Turn
	inFlight bool
	gen      uint64
}

// Send validates text, appends the user turn optimistically, and returns
// what to put on the wire: the trimmed message and the history of every
// turn before it, translated to wire roles. The caller must later call
// Resolve or Fail with the returned token.
//
// Blank input returns ErrEmptyMessage; a send while another is outstanding
// returns ErrBusy. Neither mutates the transcript.
func (c *Conversation) Send(text string) (gen uint64, message string, history []api.ChatTurn, err error) {
	message = strings.TrimSpace(text)
	if message == "" {
		return 0, "", nil, ErrEmptyMessage
	}
	if c.inFlight {
		return 0, "", nil, ErrBusy
	}

	history = c.WireHistory()
	c.turns = append(c.turns, Turn{Role: RoleUser, Content: message})
	c.inFlight = true
	c.gen++
	return c.gen, message, history, nil
}

// Resolve appends the assistant's reply for the send identified by gen.
// The optimistic user turn is already in place, so ordering always reads
// user then assistant regardless of latency.
func (c *Conversation) Resolve(gen uint64, reply string) bool {
	if gen != c.gen || !c.inFlight {
		return false
	}
	c.turns = append(c.turns, Turn{Role: RoleAssistant, Content: reply})
	c.inFlight = false
	return true
}

// Fail appends the literal connection-error assistant turn for the send
// identified by gen.
func (c *Conversation) Fail(gen uint64) bool {
	if gen != c.gen || !c.inFlight {
		return false
	}
	c.turns = append(c.turns, Turn{Role: RoleAssistant, Content: ConnectionErrorReply})
	c.inFlight = false
	return true
}

// Seed replaces the whole transcript with a single assistant turn carrying
// the analysis narrative. Refused while a send is outstanding so that the
// two transcript writers can never interleave.
func (c *Conversation) Seed(narrative string) bool {
	if c.inFlight {
		return false
	}
	c.gen++
	c.turns = []Turn{{Role: RoleAssistant, Content: narrative}}
	return true
}

// Clear empties the transcript (the reset-analysis path). Refused while a
// send is outstanding.
func (c *Conversation) Clear() bool {
	if c.inFlight {
		return false
	}
	c.gen++
	c.turns = nil
	return true
}

// Turns returns a copy of the transcript.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns.
func (c *Conversation) Len() int { return len(c.turns) }

// InFlight reports whether a send is outstanding.
func (c *Conversation) InFlight() bool { return c.inFlight }

// WireHistory translates the transcript to wire roles: assistant becomes
// "model", user stays "user". Always non-nil so it serializes as [].
func (c *Conversation) WireHistory() []api.ChatTurn {
	history := make([]api.ChatTurn, 0, len(c.turns))
	for _, t := range c.turns {
		role := "user"
		if t.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, api.ChatTurn{Role: role, Content: t.Content})
	}
	return history
}

// Suggestions returns the static follow-up prompts, offered only once the
// transcript is non-empty and nothing is in flight.
func (c *Conversation) Suggestions() []string {
	if len(c.turns) == 0 || c.inFlight {
		return nil
	}
	return followUpPrompts
}
