package main

import (
	"os"

	"github.com/abhisek/tutordesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
