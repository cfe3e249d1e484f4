package api

import (
	"context"
	"net/http"
	"net/url"
)

// NotesAPI is the typed facade over the /notes resource. It passes
// requests through as-is: field validation is the server's job.
type NotesAPI struct {
	client *Client
}

func NewNotesAPI(c *Client) *NotesAPI {
	return &NotesAPI{client: c}
}

// List returns all notes for the current user. A server response with a
// missing or null notes array yields an empty slice, not an error.
func (n *NotesAPI) List(ctx context.Context, ts TokenSource) ([]Note, error) {
	var resp notesResponse
	if err := n.client.do(ctx, http.MethodGet, "/notes", nil, ts, &resp); err != nil {
		return nil, err
	}
	if resp.Notes == nil {
		return []Note{}, nil
	}
	return resp.Notes, nil
}

// Get fetches a single note by id.
func (n *NotesAPI) Get(ctx context.Context, id string, ts TokenSource) (*Note, error) {
	var resp noteResponse
	if err := n.client.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), nil, ts, &resp); err != nil {
		return nil, err
	}
	return &resp.Note, nil
}

// Create stores a new note and returns the server-assigned record.
func (n *NotesAPI) Create(ctx context.Context, req CreateNoteRequest, ts TokenSource) (*Note, error) {
	var resp createNoteResponse
	if err := n.client.do(ctx, http.MethodPost, "/notes", req, ts, &resp); err != nil {
		return nil, err
	}
	return &resp.Note, nil
}

// Update applies a partial title/content change and returns the updated
// record.
func (n *NotesAPI) Update(ctx context.Context, id string, req UpdateNoteRequest, ts TokenSource) (*Note, error) {
	var resp noteResponse
	if err := n.client.do(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), req, ts, &resp); err != nil {
		return nil, err
	}
	return &resp.Note, nil
}

// Delete removes a note.
func (n *NotesAPI) Delete(ctx context.Context, id string, ts TokenSource) error {
	return n.client.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, ts, nil)
}

// Chat sends one chat message about a note and returns the assistant's
// reply, possibly carrying a content suggestion.
func (n *NotesAPI) Chat(ctx context.Context, id string, req NoteChatRequest, ts TokenSource) (*NoteChatResponse, error) {
	var resp NoteChatResponse
	if err := n.client.do(ctx, http.MethodPost, "/notes/"+url.PathEscape(id)+"/chat", req, ts, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ApplySuggestion replaces note fields with an AI-proposed revision and
// returns the updated note.
func (n *NotesAPI) ApplySuggestion(ctx context.Context, id string, req SuggestionRequest, ts TokenSource) (*Note, error) {
	var note Note
	if err := n.client.do(ctx, http.MethodPost, "/notes/"+url.PathEscape(id)+"/apply-suggestion", req, ts, &note); err != nil {
		return nil, err
	}
	return &note, nil
}
