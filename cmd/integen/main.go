package main

import (
	"fmt"
	"os"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
