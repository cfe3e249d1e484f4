package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/apetrov/notewise/internal/client/api"
)

// Profile prints the user profile, creating it on first use.
func (a *App) Profile(ctx context.Context) {
	profile, err := a.user.GetProfile(ctx, a.tokens)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			profile, err = a.user.CreateProfile(ctx, a.tokens)
		}
		if err != nil {
			fmt.Println(err.Error())
			return
		}
	}

	fmt.Printf("Username: %s\nEmail:    %s\nSince:    %s\n", profile.Username, profile.Email, profile.CreatedAt)
	fmt.Printf("OpenAI key stored: %v\nGemini key stored: %v\n", profile.HasOpenAIKey, profile.HasGeminiKey)
}

// SetKeys stores provider API keys. Keys are read without echo, and
// empty answers are omitted from the request so an existing key is
// never clobbered by a blank.
func (a *App) SetKeys(ctx context.Context) {
	openaiKey, err := GetSecret("OpenAI API key (empty to skip)", a.out())
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	geminiKey, err := GetSecret("Gemini API key (empty to skip)", a.out())
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if openaiKey == "" && geminiKey == "" {
		fmt.Println("Nothing to update.")
		return
	}

	profile, err := a.user.UpdateAPIKeys(ctx, api.APIKeysUpdate{OpenAIKey: openaiKey, GeminiKey: geminiKey}, a.tokens)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("OpenAI key stored: %v\nGemini key stored: %v\n", profile.HasOpenAIKey, profile.HasGeminiKey)
}

// RemoveKey deletes a stored provider key.
func (a *App) RemoveKey(ctx context.Context, keyType string) {
	if keyType != api.ProviderOpenAI && keyType != api.ProviderGemini {
		fmt.Println("usage: rmkey <openai|gemini>")
		return
	}
	if err := a.user.DeleteAPIKey(ctx, keyType, a.tokens); err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("Removed %s key.\n", keyType)
}
