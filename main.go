package main

import (
	"log"

	"github.com/thiagokokada/git-lastseen/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatalf("git-lastseen: %v", err)
	}
}
