// Package llm holds the generation clients. Each client sends one system
// instruction and one user prompt, asks for JSON-only output, and returns the
// raw text. Clients never retry.
package llm

import (
	"context"
	"errors"
)

// DefaultTemperature keeps output mostly stable while leaving room for
// variation between runs.
const DefaultTemperature float32 = 0.7

const jsonMIMEType = "application/json"

var ErrNoContent = errors.New("no content generated")

type Client interface {
	Name() string
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
	Close() error
}

// Unavailable stands in for a client that could not be built. Every call
// returns Err, so the server can start and report the problem per request.
type Unavailable struct {
	Provider string
	Err      error
}

func (u Unavailable) Name() string { return "unavailable:" + u.Provider }
func (u Unavailable) Close() error { return nil }

func (u Unavailable) GenerateJSON(context.Context, string, string) (string, error) {
	return "", u.Err
}
