package main

import (
	"log"
	"os"

	"github.com/funvibe/monadic/pkg/cli"
)

func main() {
	log.SetFlags(0)          // Disable timestamp in logs
	log.SetOutput(os.Stderr) // Log to stderr, stdout carries results

	cli.Run()
}
