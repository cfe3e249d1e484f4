package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/apetrov/notewise/internal/client/api"
	"github.com/apetrov/notewise/internal/client/chat"
)

// Chat opens an AI chat about the selected note. The transcript lives
// only for the duration of the sub-loop, like the sidebar session it
// mirrors.
func (a *App) Chat(ctx context.Context) {
	if a.selected == nil {
		fmt.Println("No note selected. Use 'open <id>' first.")
		return
	}

	session := chat.NewSession(a.notes, a.tokens, a.selected.ID, api.Models[0])
	fmt.Printf("Chatting about %q with %s. Commands: /model, /retry, /apply, /reject, /back\n",
		a.selected.Title, session.Model().Name)

	for {
		fmt.Print("chat> ")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		a.client.Session().TrackActivity()

		switch {
		case line == "/back":
			return

		case line == "/model":
			a.pickModel(session)

		case line == "/retry":
			if err := session.RetryLast(ctx); err != nil {
				fmt.Println(err.Error())
			}
			a.printLastReply(session)

		case line == "/apply":
			note, err := session.Apply(ctx)
			if err != nil {
				fmt.Println(err.Error())
				continue
			}
			a.selected = note
			if err := a.cache.Upsert(ctx, *note); err != nil {
				a.log.Warn(ctx, "failed to cache note after suggestion", "error", err)
			}
			fmt.Println("Suggestion applied.")

		case line == "/reject":
			session.Reject()
			fmt.Println("Suggestion rejected.")

		case strings.HasPrefix(line, "/"):
			fmt.Printf("unknown command: %s\n", line)

		default:
			if err := session.Send(ctx, line); err != nil {
				a.log.Warn(ctx, "chat send failed", "error", err)
			}
			a.printLastReply(session)
		}
	}
}

func (a *App) printLastReply(session *chat.Session) {
	msgs := session.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == chat.RoleAssistant {
			fmt.Printf("%s: %s\n", msgs[i].Model, msgs[i].Content)
			break
		}
	}
	if suggestion, ok := session.PendingSuggestion(); ok {
		fmt.Printf("--- suggested content ---\n%s\n--- /apply to accept, /reject to discard ---\n", suggestion)
	}
}

func (a *App) pickModel(session *chat.Session) {
	for i, m := range api.Models {
		marker := " "
		if m.ID == session.Model().ID {
			marker = "*"
		}
		free := ""
		if m.Free {
			free = " (free)"
		}
		fmt.Printf("%s %2d. %s [%s]%s\n", marker, i+1, m.Name, m.Provider, free)
	}

	choice, err := GetSimpleText(a.reader, "Model number", a.out())
	if err != nil {
		return
	}
	var idx int
	if _, err := fmt.Sscanf(choice, "%d", &idx); err != nil || idx < 1 || idx > len(api.Models) {
		fmt.Println("Invalid choice.")
		return
	}
	session.SetModel(api.Models[idx-1])
	fmt.Printf("Using %s.\n", session.Model().Name)
}
