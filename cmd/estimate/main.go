// Package main implements the estimate CLI: one estimation request in, one
// JSON result out.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/okian/auditplan/internal/domain/model"
)

// Exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command and maps its error onto an exit code. Validation
// failures exit 2, everything else 1.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if isValidation(err) {
			return exitValidation
		}
		return exitFailure
	}
	return exitOK
}

func isValidation(err error) bool {
	return errors.Is(err, model.ErrUnknownCategory) ||
		errors.Is(err, model.ErrInvalidInput) ||
		errors.Is(err, errUsage)
}
