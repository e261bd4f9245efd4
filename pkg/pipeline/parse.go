package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/flowter/pkg/cache"
	"github.com/matzehuels/flowter/pkg/errors"
	"github.com/matzehuels/flowter/pkg/graph"
)

// Parse reads and decodes the input document named by opts. It returns the
// document and the hash of its raw bytes.
func Parse(ctx context.Context, opts Options) (graph.Document, string, error) {
	if err := opts.ValidateForParse(); err != nil {
		return graph.Document{}, "", err
	}
	if err := ctx.Err(); err != nil {
		return graph.Document{}, "", err
	}

	data := opts.Input
	if len(data) == 0 {
		raw, err := os.ReadFile(opts.InputPath)
		if err != nil {
			if os.IsNotExist(err) {
				return graph.Document{}, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", opts.InputPath)
			}
			return graph.Document{}, "", fmt.Errorf("read %s: %w", opts.InputPath, err)
		}
		data = raw
	}

	doc, err := graph.DecodeDocument(data, graph.Format(opts.InputFormat))
	if err != nil {
		if opts.InputPath != "" {
			return graph.Document{}, "", fmt.Errorf("%s: %w", opts.InputPath, err)
		}
		return graph.Document{}, "", err
	}
	return doc, cache.Hash(data), nil
}
