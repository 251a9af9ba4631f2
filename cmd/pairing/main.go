package main

import (
	"os"

	"pairing/cmd/pairing/commands"
)

func main() {
	os.Exit(commands.ExitCode(commands.Execute()))
}
