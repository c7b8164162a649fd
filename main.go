// chatterbox - a terminal client for line-based chat servers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chatterbox/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	status, err := cmd.Execute(ctx, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatterbox: %v\n", err)
	}
	cancel()
	os.Exit(status.ExitCode())
}
