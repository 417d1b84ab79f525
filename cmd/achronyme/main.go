package main

import (
	"fmt"
	"os"

	"github.com/eddndev/achronyme-go/cmd/achronyme/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
