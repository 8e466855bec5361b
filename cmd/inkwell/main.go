package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// Cancelled runs already logged their state; no second report.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "inkwell:", err)
		}
		os.Exit(1)
	}
}
