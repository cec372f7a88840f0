// Command focus is a keyboard-driven, in-memory task list.
package main

import (
	"os"

	"github.com/AbdelazizMoustafa10m/focus/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
