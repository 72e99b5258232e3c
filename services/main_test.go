package services

import (
	"fmt"
	"os"
	"testing"
)

// TestMain ensures GO_ENV is set to "test" to prevent accidental data loss
func TestMain(m *testing.M) {
	if env := os.Getenv("GO_ENV"); env != "test" {
		fmt.Fprintf(os.Stderr, "SAFETY CHECK FAILED: tests must run with GO_ENV=test (current GO_ENV=%q)\n", env)
		os.Exit(1)
	}
	os.Exit(m.Run())
}
