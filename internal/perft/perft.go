// Package perft counts move-generation leaf nodes in parallel, one
// goroutine per root move.
package perft

import (
	"context"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/shogiplay/internal/board"
)

// Result is the leaf count below one root move.
type Result struct {
	Move  board.Move
	Nodes int64
}

// Divide counts the leaves below each legal root move to the given depth.
// Each root move is searched on its own copy of pos, so pos is never
// modified. workers <= 0 uses GOMAXPROCS. Cancelling ctx stops the
// remaining root moves and returns the context error.
func Divide(ctx context.Context, pos *board.Position, depth, workers int) ([]Result, error) {
	if depth < 1 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	moves := pos.GenerateLegalMoves().Slice()
	results := make([]Result, len(moves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range moves {
		p := pos.Copy()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.MakeMove(m)
			results[i] = Result{Move: m, Nodes: board.Perft(p, depth-1)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b Result) int {
		return strings.Compare(a.Move.String(), b.Move.String())
	})
	return results, nil
}

// Count returns the total number of leaves at depth.
func Count(ctx context.Context, pos *board.Position, depth, workers int) (int64, error) {
	if depth == 0 {
		return 1, nil
	}
	results, err := Divide(ctx, pos, depth, workers)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, r := range results {
		total += r.Nodes
	}
	return total, nil
}
