package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	err := newRootCommand().Execute()
	if err == nil {
		return
	}
	// Interruption already printed its own summary and saved the catalog.
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "refscribe: %v\n", err)
	}
	os.Exit(1)
}
