// Package usi implements the Universal Shogi Interface protocol on top of
// the rules engine. It does not search: "go" answers with resign, a
// declaration win or a random legal move.
package usi

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/perft"
)

// USI implements the Universal Shogi Interface protocol.
type USI struct {
	in       io.Reader
	out      io.Writer
	log      logr.Logger
	position *board.Position
	rng      *rand.Rand
	workers  int // perft parallelism, set by the Threads option
}

// New creates a protocol handler reading commands from in and writing
// responses to out.
func New(in io.Reader, out io.Writer, log logr.Logger) *USI {
	return &USI{
		in:       in,
		out:      out,
		log:      log,
		position: board.NewPosition(),
		rng:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5348)),
		workers:  runtime.GOMAXPROCS(0),
	}
}

// Seed makes the random move choice reproducible.
func (u *USI) Seed(seed uint64) {
	u.rng = rand.New(rand.NewPCG(seed, 0x5348))
}

// Position returns the current position.
func (u *USI) Position() *board.Position {
	return u.position
}

func (u *USI) println(args ...any) {
	fmt.Fprintln(u.out, args...)
}

func (u *USI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

// Run reads commands until "quit" or the end of input.
func (u *USI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]
		u.log.V(2).Info("command", "line", line)

		switch cmd {
		case "usi":
			u.handleUSI()
		case "isready":
			u.println("readyok")
		case "usinewgame":
			u.position = board.NewPosition()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo()
		case "stop":
			// "go" answers immediately, so there is nothing to stop.
		case "ponderhit":
		case "gameover":
			u.log.Info("game over", "result", strings.Join(args, " "), "ply", u.position.Ply)
		case "quit":
			return nil
		case "setoption":
			u.handleSetOption(args)
		// Debug commands
		case "d":
			u.handleDisplay()
		case "moves":
			u.handleMoves()
		case "perft":
			u.handlePerft(args)
		default:
			u.log.Info("unknown command", "command", cmd)
		}
	}
	return scanner.Err()
}

// handleUSI responds to the "usi" command.
func (u *USI) handleUSI() {
	u.println("id name ShogiPlay")
	u.println("id author ShogiPlay Team")
	u.printf("option name Threads type spin default %d min 1 max 256\n", u.workers)
	u.println("usiok")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves 7g7f 3c3d
//   - position sfen <sfen>
//   - position sfen <sfen> moves 7g7f
//
// Moves are applied up to the first one that is not legal.
func (u *USI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "sfen":
		var err error
		pos, err = board.ParseSFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			u.log.Error(err, "invalid position")
			u.printf("info string invalid sfen: %v\n", err)
			return
		}
	default:
		u.log.Info("invalid position command", "args", strings.Join(args, " "))
		return
	}
	u.position = pos

	if movesAt >= len(args) {
		return
	}
	for _, moveStr := range args[movesAt+1:] {
		m, err := board.ParseMove(moveStr)
		if err != nil || !pos.IsLegalMove(m) {
			u.log.Info("illegal move in position command", "move", moveStr, "sfen", pos.SFEN())
			u.printf("info string invalid move: %s\n", moveStr)
			return
		}
		pos.MakeMove(m)
	}
}

// handleGo picks a move for the side to move.
func (u *USI) handleGo() {
	pos := u.position
	legal := pos.GenerateLegalMoves()

	switch {
	case legal.Len() == 0:
		u.println("bestmove resign")
	case pos.CanDeclareWin():
		u.println("bestmove win")
	default:
		m := legal.Get(u.rng.IntN(legal.Len()))
		u.printf("bestmove %s\n", m)
	}
}

// handleSetOption handles "setoption name <name> value <value>".
func (u *USI) handleSetOption(args []string) {
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "threads":
		if n, err := strconv.Atoi(value); err == nil && n >= 1 {
			u.workers = n
		}
	default:
		u.log.V(1).Info("ignored option", "name", name, "value", value)
	}
}

// handleDisplay prints the position with its status.
func (u *USI) handleDisplay() {
	pos := u.position
	u.println(pos.String())
	u.printf("sfen %s\n", pos.SFEN())
	u.printf("in check: %v\n", pos.InCheck())
	u.printf("repetition: %s\n", pos.CheckRepetition())
	u.printf("can declare: %v\n", pos.CanDeclareWin())
}

// handleMoves lists the legal moves.
func (u *USI) handleMoves() {
	legal := u.position.GenerateLegalMoves()
	u.printf("%s\n", legal)
	u.printf("count %d\n", legal.Len())
}

// handlePerft runs a perft test.
func (u *USI) handlePerft(args []string) {
	depth := 3
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			u.printf("info string invalid depth: %s\n", args[0])
			return
		}
		depth = d
	}

	start := time.Now()
	results, err := perft.Divide(context.Background(), u.position, depth, u.workers)
	if err != nil {
		u.log.Error(err, "perft failed")
		return
	}
	elapsed := time.Since(start)

	var nodes int64
	for _, r := range results {
		u.printf("%s: %d\n", r.Move, r.Nodes)
		nodes += r.Nodes
	}
	u.printf("Nodes: %d\n", nodes)
	u.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		u.printf("NPS: %.0f\n", nps)
	}
}
