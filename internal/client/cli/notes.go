package cli

import (
	"context"
	"fmt"

	"github.com/apetrov/notewise/internal/client/api"
	notesrepo "github.com/apetrov/notewise/internal/client/repositories/notes"
	"github.com/apetrov/notewise/internal/dbx"
)

// List fetches notes from the server, refreshes the local cache, and
// prints them.
func (a *App) List(ctx context.Context) {
	notes, err := a.notes.List(ctx, a.tokens)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	if err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return notesrepo.NewSQLiteRepository(tx).ReplaceAll(ctx, notes)
	}); err != nil {
		a.log.Warn(ctx, "failed to refresh notes cache", "error", err)
	}

	printNotes(notes)
}

// ListCached prints the locally cached notes without touching the
// network. Useful when the backend is unreachable.
func (a *App) ListCached(ctx context.Context) {
	notes, err := a.cache.List(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	printNotes(notes)
}

func printNotes(notes []api.Note) {
	if len(notes) == 0 {
		fmt.Println("No notes.")
		return
	}
	for _, n := range notes {
		fmt.Printf("%s  %-30s  updated %s\n", n.ID, n.Title, n.UpdatedAt)
	}
}

// Open selects a note by id and prints it.
func (a *App) Open(ctx context.Context, id string) {
	note, err := a.notes.Get(ctx, id, a.tokens)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	a.selected = note
	a.printSelected()
}

func (a *App) printSelected() {
	fmt.Printf("# %s\n\n%s\n", a.selected.Title, a.selected.Content)
}

// New creates a note and selects it. An empty title becomes
// "Untitled Note", matching the web client's default.
func (a *App) New(ctx context.Context) {
	title, err := GetSimpleText(a.reader, "Title", a.out())
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if title == "" {
		title = "Untitled Note"
	}

	content, err := GetMultiline(a.reader, "Content", a.out())
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	note, err := a.notes.Create(ctx, api.CreateNoteRequest{Title: title, Content: content}, a.tokens)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	if err := a.cache.Upsert(ctx, *note); err != nil {
		a.log.Warn(ctx, "failed to cache created note", "error", err)
	}

	a.selected = note
	fmt.Printf("Created %s\n", note.ID)
}

// Edit updates the selected note. Empty answers leave the field
// unchanged (and are omitted from the request entirely).
func (a *App) Edit(ctx context.Context) {
	if a.selected == nil {
		fmt.Println("No note selected. Use 'open <id>' first.")
		return
	}

	title, err := GetSimpleText(a.reader, "New title (empty to keep)", a.out())
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	content, err := GetMultiline(a.reader, "New content (empty to keep)", a.out())
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	var req api.UpdateNoteRequest
	if title != "" {
		req.Title = &title
	}
	if content != "" {
		req.Content = &content
	}
	if req.Title == nil && req.Content == nil {
		fmt.Println("Nothing to change.")
		return
	}

	note, err := a.notes.Update(ctx, a.selected.ID, req, a.tokens)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	if err := a.cache.Upsert(ctx, *note); err != nil {
		a.log.Warn(ctx, "failed to cache updated note", "error", err)
	}

	a.selected = note
	fmt.Println("Updated.")
}

// Remove deletes the selected note. The local copy is dropped only
// after the server confirms, so a failed delete leaves the note in
// place.
func (a *App) Remove(ctx context.Context) {
	if a.selected == nil {
		fmt.Println("No note selected. Use 'open <id>' first.")
		return
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete %q? (y/n)", a.selected.Title), a.out())
	if err != nil || answer != "y" {
		return
	}

	if err := a.notes.Delete(ctx, a.selected.ID, a.tokens); err != nil {
		fmt.Println(err.Error())
		return
	}

	if err := a.cache.Delete(ctx, a.selected.ID); err != nil {
		a.log.Warn(ctx, "failed to evict deleted note from cache", "error", err)
	}

	fmt.Printf("Deleted %s\n", a.selected.ID)
	a.selected = nil
}
