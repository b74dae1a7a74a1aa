package main

import (
	"io"
	"os"

	"github.com/horiagug/yt-transcript-extract/internal/extract"
)

// Exit codes. A failed retrieval is still reported with ExitSuccess; callers
// read the JSON body to tell the outcomes apart.
const (
	ExitSuccess = 0
	ExitUsage   = 1 // missing video ID, bad flags or config
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr, newClient)
	cmd.SetArgs(splitArgs(cmd, args))

	if err := cmd.Execute(); err != nil {
		_ = extract.Encode(stdout, extract.Failure(err.Error()))
		return ExitUsage
	}
	return ExitSuccess
}
