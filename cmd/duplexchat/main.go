// Copyright 2016 Aleksandr Demakin. All rights reserved.

// Command duplexchat runs one side of a two-process console chat over
// System V message queues.
//
// Start "duplexchat initiator" in one terminal and "duplexchat joiner" in another.
// Type "quit" on either side to end the conversation.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code:
// 0 for a normal end of the chat, 1 for setup, transport or timeout errors.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := newRootCommand(stdin, stdout, stderr)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
