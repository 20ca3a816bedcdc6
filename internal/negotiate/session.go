// Package negotiate drives a role-played contract negotiation against a
// language-model counterparty. A session is a bounded turn-based state
// machine seeded with one flagged clause; the model call is an injected
// capability so tests can substitute a stub.
package negotiate

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/fairlance/clausecheck/internal/llm"
)

// Role tags one side of the transcript.
type Role string

const (
	RoleUser         Role = "user"
	RoleCounterparty Role = "counterparty"
)

// Turn is one transcript entry.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Completer is the injected completion capability.
type Completer interface {
	Chat(ctx context.Context, system string, messages []llm.Message) (string, error)
}

// maxTurns bounds the transcript: once it holds this many turns the session
// ends regardless of content.
const maxTurns = 6

// resolutionKeywords end the session when they appear in a counterparty
// reply. Checked case-insensitively; a heuristic, not semantic understanding.
var resolutionKeywords = []string{
	"agreement",
	"deal",
	"accept",
	"fine",
	"okay we can",
	"let's proceed",
}

const (
	fallbackReply = "Could you clarify which specific change to this clause you are proposing? I want to be sure we're discussing the same terms."
	stallingReply = "Let me think about that for a moment. What else is on your mind about this clause?"
)

// Session is one negotiation over a single flagged clause. It is owned by
// its initiating context; turns within a session are strictly sequential.
type Session struct {
	Turns         []Turn     `json:"turns"`
	Difficulty    Difficulty `json:"difficulty"`
	ViolationType string     `json:"violation_type"`
	ClauseText    string     `json:"clause_text"`
	Ended         bool       `json:"ended"`
}

func NewSession(difficulty Difficulty, violationType, clauseText string) *Session {
	return &Session{
		Difficulty:    difficulty,
		ViolationType: violationType,
		ClauseText:    clauseText,
	}
}

// Advance appends the user's turn, asks the counterparty for a reply and
// returns it together with whether the session has concluded. A failed
// completion call still completes the turn with a fallback reply and leaves
// the session open; negotiation failures never surface as errors.
func (s *Session) Advance(ctx context.Context, c Completer, userText string) (string, bool) {
	if s.Ended {
		return "", true
	}
	s.Turns = append(s.Turns, Turn{Role: RoleUser, Text: userText})

	reply, err := c.Chat(ctx, s.systemFraming(), s.messages())
	if err != nil {
		log.Printf("negotiation completion failed, using fallback: %v", err)
		s.Turns = append(s.Turns, Turn{Role: RoleCounterparty, Text: fallbackReply})
		return fallbackReply, false
	}
	if reply == "" {
		reply = stallingReply
	}
	s.Turns = append(s.Turns, Turn{Role: RoleCounterparty, Text: reply})

	if len(s.Turns) >= maxTurns || containsResolution(reply) {
		s.Ended = true
	}
	return reply, s.Ended
}

// systemFraming combines the persona, the seed violation and the behavioral
// contract for the counterparty.
func (s *Session) systemFraming() string {
	return fmt.Sprintf(
		"%s\n\nThe freelancer wants to renegotiate a clause your company's contract was flagged for (%s):\n%q\n\n"+
			"Stay in character. Reply in first person, 2-3 sentences, no lists. "+
			"After 3-4 exchanges, begin moving toward a resolution.",
		persona(s.Difficulty), s.ViolationType, s.ClauseText)
}

func (s *Session) messages() []llm.Message {
	msgs := make([]llm.Message, 0, len(s.Turns))
	for _, t := range s.Turns {
		role := "user"
		if t.Role == RoleCounterparty {
			role = "assistant"
		}
		msgs = append(msgs, llm.Message{Role: role, Content: t.Text})
	}
	return msgs
}

func containsResolution(reply string) bool {
	lower := strings.ToLower(reply)
	for _, kw := range resolutionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
