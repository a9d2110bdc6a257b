// Command perft counts legal move paths from a position.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/go-logr/stdr"
	"github.com/pkg/profile"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/perft"
)

var (
	sfen    = flag.String("sfen", board.StartSFEN, "position to count from")
	depth   = flag.Int("depth", 3, "search depth")
	divide  = flag.Bool("divide", false, "print the count below each root move")
	workers = flag.Int("workers", 0, "parallel root moves (0 = GOMAXPROCS)")
	cpuprof = flag.String("cpuprofile", "", "write a cpu profile into this directory")
)

func main() {
	flag.Parse()
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("perft")

	pos, err := board.ParseSFEN(*sfen)
	if err != nil {
		logger.Error(err, "invalid position")
		os.Exit(2)
	}

	if *cpuprof != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuprof), profile.NoShutdownHook).Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := perft.Divide(ctx, pos, *depth, *workers)
	if err != nil {
		logger.Error(err, "perft aborted")
		os.Exit(1)
	}
	elapsed := time.Since(start)

	var nodes int64
	for _, r := range results {
		if *divide {
			fmt.Printf("%s: %d\n", r.Move, r.Nodes)
		}
		nodes += r.Nodes
	}
	if *depth == 0 {
		nodes = 1
	}

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
