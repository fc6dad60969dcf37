package main

import (
	"os"

	"github.com/focusflow/focusflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
