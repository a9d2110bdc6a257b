// Package record holds a game record: the start position, the moves with
// their elapsed times, and the game headers.
package record

import (
	"errors"
	"fmt"
	"time"

	"github.com/hailam/shogiplay/internal/board"
)

// ErrIllegalMove is returned when a recorded move is not legal in the
// position it is played from.
var ErrIllegalMove = errors.New("illegal move in record")

// GameInfo stores the headers of a game.
type GameInfo struct {
	BlackName string    `json:"black_name,omitempty"`
	WhiteName string    `json:"white_name,omitempty"`
	Event     string    `json:"event,omitempty"`
	Site      string    `json:"site,omitempty"`
	Opening   string    `json:"opening,omitempty"`
	StartTime time.Time `json:"start_time,omitzero"`
	EndTime   time.Time `json:"end_time,omitzero"`
}

// MoveInfo is one recorded move.
type MoveInfo struct {
	Move       board.Move    `json:"move"`
	Elapsed    time.Duration `json:"elapsed,omitempty"`
	HasElapsed bool          `json:"has_elapsed,omitempty"`
}

// Record is a complete game record.
type Record struct {
	ID        string     `json:"id"`
	Info      GameInfo   `json:"info"`
	StartSFEN string     `json:"start_sfen"`
	Moves     []MoveInfo `json:"moves"`
	Result    string     `json:"result,omitempty"` // terminal CSA keyword, e.g. "TORYO"
}

// New creates an empty record starting from start, or from the initial
// position when start is nil.
func New(start *board.Position) *Record {
	sfen := board.StartSFEN
	if start != nil {
		sfen = start.SFEN()
	}
	return &Record{StartSFEN: sfen}
}

// Append adds a move. A negative elapsed time means the time is unknown.
func (r *Record) Append(m board.Move, elapsed time.Duration) {
	info := MoveInfo{Move: m}
	if elapsed >= 0 {
		info.Elapsed = elapsed
		info.HasElapsed = true
	}
	r.Moves = append(r.Moves, info)
}

// Start parses the start position.
func (r *Record) Start() (*board.Position, error) {
	pos, err := board.ParseSFEN(r.StartSFEN)
	if err != nil {
		return nil, fmt.Errorf("record start position: %w", err)
	}
	return pos, nil
}

// Replay plays every move from the start position and returns the final
// position.
func (r *Record) Replay() (*board.Position, error) {
	return r.ReplayFunc(nil)
}

// ReplayFunc is like Replay but calls fn with every position reached,
// starting with the start position. The position passed to fn must not be
// kept or modified. A non-nil error from fn stops the replay.
func (r *Record) ReplayFunc(fn func(ply int, pos *board.Position) error) (*board.Position, error) {
	pos, err := r.Start()
	if err != nil {
		return nil, err
	}
	if fn != nil {
		if err := fn(0, pos); err != nil {
			return nil, err
		}
	}

	for i, mi := range r.Moves {
		if !pos.IsLegalMove(mi.Move) {
			return nil, fmt.Errorf("ply %d (%s): %w", i+1, mi.Move, ErrIllegalMove)
		}
		pos.MakeMove(mi.Move)
		if fn != nil {
			if err := fn(i+1, pos); err != nil {
				return nil, err
			}
		}
	}
	return pos, nil
}

// TotalTime returns the time spent by each side over the recorded moves.
func (r *Record) TotalTime() (black, white time.Duration) {
	start, err := board.ParseSFEN(r.StartSFEN)
	side := board.Black
	if err == nil {
		side = start.SideToMove
	}
	for _, mi := range r.Moves {
		if side == board.Black {
			black += mi.Elapsed
		} else {
			white += mi.Elapsed
		}
		side = side.Other()
	}
	return black, white
}
