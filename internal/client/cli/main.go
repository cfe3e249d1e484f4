package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) Main(ctx context.Context) {
	fmt.Println("notewise CLI (type 'help' for commands)")

	for {
		fmt.Printf("notewise %s> ", a.prompt())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		// Every command counts as user activity for the keepalive.
		a.client.Session().TrackActivity()

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: list, cached, open <id>, new, edit, rm, chat, profile, setkeys, rmkey <openai|gemini>, exit")
		case "list":
			a.List(ctx)
		case "cached":
			a.ListCached(ctx)
		case "open":
			if len(args) != 1 {
				fmt.Println("usage: open <id>")
				continue
			}
			a.Open(ctx, args[0])
		case "new":
			a.New(ctx)
		case "edit":
			a.Edit(ctx)
		case "rm":
			a.Remove(ctx)
		case "chat":
			a.Chat(ctx)
		case "profile":
			a.Profile(ctx)
		case "setkeys":
			a.SetKeys(ctx)
		case "rmkey":
			if len(args) != 1 {
				fmt.Println("usage: rmkey <openai|gemini>")
				continue
			}
			a.RemoveKey(ctx, args[0])
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Printf("unknown command: %s\n", cmd)
		}
	}
}

func (a *App) prompt() string {
	if a.selected == nil {
		return ""
	}
	return "[" + a.selected.Title + "] "
}
