// Package chat owns the AI chat workflow for one note: the message
// transcript, the pending content suggestion, and the retry/apply
// rules around both. The transcript is client-local and ephemeral; it
// is discarded with the session.
package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/apetrov/notewise/internal/client/api"
)

// Role of a transcript entry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const errorBubbleText = "Sorry, I encountered an error. Please try again."
const authErrorBubbleText = "Authentication error. Please re-authenticate and try again."

var (
	// ErrNoPendingSuggestion is returned by Apply when nothing is
	// proposed.
	ErrNoPendingSuggestion = errors.New("no pending suggestion")

	// ErrNothingToRetry is returned by RetryLast when the transcript
	// holds no user message to resend.
	ErrNothingToRetry = errors.New("no user message to retry")
)

// Message is one transcript entry.
type Message struct {
	ID         string
	Role       string
	Content    string
	Model      string
	Suggestion string
	Timestamp  time.Time
}

// NoteChatter is the slice of the API the session needs. *api.NotesAPI
// satisfies it.
type NoteChatter interface {
	Chat(ctx context.Context, id string, req api.NoteChatRequest, ts api.TokenSource) (*api.NoteChatResponse, error)
	ApplySuggestion(ctx context.Context, id string, req api.SuggestionRequest, ts api.TokenSource) (*api.Note, error)
}

// Session drives the chat about a single note.
//
// State: the transcript grows optimistically (the user message is
// appended before the server responds), and at most one suggestion is
// pending at a time. A new successful response always overwrites the
// pending suggestion; a failed send leaves it untouched.
//
// Session is not safe for concurrent use; it belongs to one UI
// component at a time.
type Session struct {
	client NoteChatter
	tokens api.TokenSource
	noteID string
	model  api.AIModel

	messages []Message
	pending  *api.NoteChatResponse
}

func NewSession(client NoteChatter, tokens api.TokenSource, noteID string, model api.AIModel) *Session {
	return &Session{
		client: client,
		tokens: tokens,
		noteID: noteID,
		model:  model,
	}
}

// Messages returns the transcript in order.
func (s *Session) Messages() []Message {
	return s.messages
}

// Model returns the currently selected model.
func (s *Session) Model() api.AIModel {
	return s.model
}

// SetModel switches the model used for subsequent sends.
func (s *Session) SetModel(m api.AIModel) {
	s.model = m
}

// PendingSuggestion returns the proposed content replacement, if any.
func (s *Session) PendingSuggestion() (string, bool) {
	if s.pending == nil || s.pending.Suggestion == "" {
		return "", false
	}
	return s.pending.Suggestion, true
}

// Send appends the user message immediately, then asks the assistant.
// On success the reply is appended and its suggestion (if any) replaces
// the pending one. On failure a synthetic assistant error bubble is
// appended, the pending suggestion stays as it was, and the error is
// returned for the caller's own reporting.
func (s *Session) Send(ctx context.Context, text string) error {
	s.messages = append(s.messages, Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	})

	resp, err := s.client.Chat(ctx, s.noteID, api.NoteChatRequest{
		Message:  text,
		Model:    s.model.ID,
		Provider: s.model.Provider,
	}, s.tokens)
	if err != nil {
		s.messages = append(s.messages, Message{
			ID:        uuid.NewString(),
			Role:      RoleAssistant,
			Content:   errorBubbleText,
			Timestamp: time.Now(),
		})
		return err
	}

	s.messages = append(s.messages, s.assistantMessage(resp))
	s.pending = resp
	return nil
}

// Apply submits the pending suggestion as the note's new content and
// returns the updated note. It always resolves a brand-new token from
// the source first; the apply typically happens long after the token of
// the original chat call was minted, and an expired token here must
// surface instead of being swallowed. If no token can be obtained the
// suggestion stays Proposed so the user can retry.
func (s *Session) Apply(ctx context.Context) (*api.Note, error) {
	suggestion, ok := s.PendingSuggestion()
	if !ok {
		return nil, ErrNoPendingSuggestion
	}

	fresh, err := s.freshToken(ctx)
	if err != nil {
		return nil, err
	}

	note, err := s.client.ApplySuggestion(ctx, s.noteID, api.SuggestionRequest{NewContent: &suggestion}, fresh)
	if err != nil {
		return nil, err
	}

	s.pending = nil
	return note, nil
}

// Reject discards the pending suggestion.
func (s *Session) Reject() {
	s.pending = nil
}

// RetryLast resends the most recent user message with a freshly
// resolved token. The reply replaces the last assistant message in
// place; if the transcript has no assistant message yet, it is
// appended. The pending suggestion is cleared up front and reinstalled
// from the new response.
func (s *Session) RetryLast(ctx context.Context) error {
	last, ok := s.lastUserMessage()
	if !ok {
		return ErrNothingToRetry
	}

	s.pending = nil

	fresh, err := s.freshToken(ctx)
	if err != nil {
		s.messages = append(s.messages, Message{
			ID:        uuid.NewString(),
			Role:      RoleAssistant,
			Content:   authErrorBubbleText,
			Timestamp: time.Now(),
		})
		return err
	}

	resp, err := s.client.Chat(ctx, s.noteID, api.NoteChatRequest{
		Message:  last.Content,
		Model:    s.model.ID,
		Provider: s.model.Provider,
	}, fresh)
	if err != nil {
		if errors.Is(err, api.ErrAuthResolution) || api.IsUnauthorized(err) {
			s.messages = append(s.messages, Message{
				ID:        uuid.NewString(),
				Role:      RoleAssistant,
				Content:   authErrorBubbleText,
				Timestamp: time.Now(),
			})
		}
		return err
	}

	reply := s.assistantMessage(resp)
	if i, ok := s.lastAssistantIndex(); ok {
		s.messages[i] = reply
	} else {
		s.messages = append(s.messages, reply)
	}
	s.pending = resp
	return nil
}

// freshToken forces one direct call to the token source, bypassing any
// cached resolution, and wraps the result for the API layer.
func (s *Session) freshToken(ctx context.Context) (api.TokenSource, error) {
	token, err := s.tokens(ctx)
	if err != nil {
		return nil, errors.Join(api.ErrAuthResolution, err)
	}
	if token == "" {
		return nil, errors.Join(api.ErrAuthResolution, api.ErrEmptyToken)
	}
	return func(context.Context) (string, error) { return token, nil }, nil
}

func (s *Session) assistantMessage(resp *api.NoteChatResponse) Message {
	return Message{
		ID:         uuid.NewString(),
		Role:       RoleAssistant,
		Content:    resp.Message,
		Model:      s.model.Name,
		Suggestion: resp.Suggestion,
		Timestamp:  time.Now(),
	}
}

func (s *Session) lastUserMessage() (Message, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == RoleUser {
			return s.messages[i], true
		}
	}
	return Message{}, false
}

func (s *Session) lastAssistantIndex() (int, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == RoleAssistant {
			return i, true
		}
	}
	return 0, false
}
