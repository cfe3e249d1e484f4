package api

// Note is a single note as stored by the server. The server owns the
// identity and both timestamps; title and content edited locally are
// provisional until a round-trip succeeds.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateNoteRequest carries a partial update. Nil fields are omitted
// from the payload and left untouched by the server.
type UpdateNoteRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type NoteChatRequest struct {
	Message  string `json:"message"`
	Model    string `json:"model"`
	Provider string `json:"provider"`
}

// NoteChatResponse is the assistant's reply for one chat turn.
// Suggestion, when present, is a proposed full replacement for the
// note's content.
type NoteChatResponse struct {
	Message     string `json:"message"`
	Model       string `json:"model"`
	NoteContext string `json:"noteContext"`
	Suggestion  string `json:"suggestion,omitempty"`
}

type SuggestionRequest struct {
	NewTitle   *string `json:"newTitle,omitempty"`
	NewContent *string `json:"newContent,omitempty"`
}

// Provider identifiers accepted in chat requests and api-key operations.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// AIModel describes one entry of the static model catalog.
type AIModel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Free     bool   `json:"free"`
}

// Models is the catalog of models the chat endpoint accepts.
var Models = []AIModel{
	{ID: "gpt-3.5-turbo", Name: "GPT-3.5 Turbo", Provider: ProviderOpenAI, Free: true},
	{ID: "gpt-4", Name: "GPT-4", Provider: ProviderOpenAI, Free: false},
	{ID: "gpt-4-turbo", Name: "GPT-4 Turbo", Provider: ProviderOpenAI, Free: false},
	{ID: "gpt-4o", Name: "GPT-4o", Provider: ProviderOpenAI, Free: false},
	{ID: "gpt-4o-mini", Name: "GPT-4o Mini", Provider: ProviderOpenAI, Free: true},
	{ID: "gemini-1.5-flash", Name: "Gemini 1.5 Flash", Provider: ProviderGemini, Free: true},
	{ID: "gemini-1.5-pro", Name: "Gemini 1.5 Pro", Provider: ProviderGemini, Free: false},
	{ID: "gemini-2.0-flash", Name: "Gemini 2.0 Flash", Provider: ProviderGemini, Free: true},
}

// UserProfile is the server's view of the account. Stored provider keys
// are never echoed back; only the Has* booleans report their presence.
type UserProfile struct {
	ID           string `json:"id"`
	Email        string `json:"email,omitempty"`
	Username     string `json:"username,omitempty"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	HasOpenAIKey bool   `json:"hasOpenaiKey"`
	HasGeminiKey bool   `json:"hasGeminiKey"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// APIKeysUpdate carries new provider keys. Empty values are omitted from
// the payload entirely rather than sent as empty strings, so a blank
// field never clears a stored key.
type APIKeysUpdate struct {
	OpenAIKey string `json:"openaiKey,omitempty"`
	GeminiKey string `json:"geminiKey,omitempty"`
}

// Server response envelopes.

type notesResponse struct {
	Message string `json:"message"`
	Notes   []Note `json:"notes"`
	Count   int    `json:"count"`
}

type noteResponse struct {
	Message string `json:"message"`
	Note    Note   `json:"note"`
}

type createNoteResponse struct {
	Message string `json:"message"`
	NoteID  string `json:"noteId"`
	Note    Note   `json:"note"`
}

// errorResponse is the error body shape produced by the server's
// middleware and handlers. Unknown or empty bodies decode to the zero
// value, which is treated as "no further detail".
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Debug   string `json:"debug"`
}
