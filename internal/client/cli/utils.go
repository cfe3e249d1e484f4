package cli

import (
	"io"
	"os"
)

func (a *App) out() io.Writer {
	return os.Stdout
}
