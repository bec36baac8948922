package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/cratedoc"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crates      []string      `arg:"" name:"crate" help:"Crates to document, as name or name@version"`
	Cargo       string        `default:"cargo" env:"CRATEDOC_CARGO" help:"Path to the cargo binary"`
	RegistryURL string        `name:"registry-url" default:"https://crates.io" env:"CRATEDOC_REGISTRY_URL" help:"Base URL of the crates registry API"`
	UserAgent   string        `name:"user-agent" default:"cratedoc (https://github.com/fwojciec/cratedoc)" env:"CRATEDOC_USER_AGENT" help:"User-Agent sent to the registry"`
	Timeout     time.Duration `default:"10s" env:"CRATEDOC_TIMEOUT" help:"Registry request timeout"`
	Concurrency int           `short:"c" default:"2" help:"Crates documented at once"`
	Output      string        `short:"o" help:"Write each document to a markdown file in this directory instead of stdout"`
	Verbose     bool          `short:"v" help:"Log every toolchain and registry call"`
	TempDir     string        `name:"temp-dir" env:"CRATEDOC_TEMP_DIR" help:"Directory for throwaway cargo workspaces"`
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Loader cratedoc.Loader
	Writer cratedoc.FragmentWriter
}

// ResolveCmd documents one or more crates.
type ResolveCmd struct {
	Crates      []string
	Concurrency int
	Output      string
}
