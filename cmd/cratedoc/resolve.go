package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/cratedoc"
	"github.com/fwojciec/cratedoc/fs"
	"golang.org/x/sync/errgroup"
)

// Run loads every crate, each in its own workspace, and prints or writes
// the documents in argument order.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	fragments := make([]*cratedoc.Fragment, len(c.Crates))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, identifier := range c.Crates {
		g.Go(func() error {
			fragments[i] = deps.Loader.Load(deps.Ctx, identifier)
			return nil
		})
	}
	_ = g.Wait()

	if deps.Writer == nil {
		for i, f := range fragments {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprintln(deps.Stdout, strings.TrimRight(f.Content, "\n"))
		}
		return nil
	}

	var errs []error
	for _, f := range fragments {
		if err := deps.Writer.WriteFragment(deps.Ctx, f); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %v\n", f.Reference, err)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintln(deps.Stdout, filepath.Join(c.Output, fs.FragmentPath(f.Reference)))
	}
	return errors.Join(errs...)
}
