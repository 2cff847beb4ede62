package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sammelband/sammelband"
)

// Run prints the well-formed URLs to stdout and the malformed ones to
// stderr. It fails when any URL is malformed.
func (c *ClassifyCmd) Run(deps *Dependencies) error {
	var logger *slog.Logger
	if deps.Verbose {
		logger = deps.Logger
	}
	clean, report := sammelband.ClassifyURLs(logger, c.URLs)
	for _, u := range clean {
		fmt.Fprintln(deps.Stdout, u)
	}
	if report == "" {
		return nil
	}
	bad := strings.Split(report, "\n")
	for _, u := range bad {
		fmt.Fprintf(deps.Stderr, "malformed: %s\n", u)
	}
	return fmt.Errorf("%d of %d URLs malformed", len(bad), len(c.URLs))
}
