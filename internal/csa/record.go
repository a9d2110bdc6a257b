package csa

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/record"
)

const timeLayout = "2006/01/02 15:04:05"

// Header prefixes
const (
	prefixBlack     = "N+"
	prefixWhite     = "N-"
	prefixEvent     = "$EVENT:"
	prefixSite      = "$SITE:"
	prefixStartTime = "$START_TIME:"
	prefixEndTime   = "$END_TIME:"
	prefixOpening   = "$OPENING:"
)

// decode returns the file contents as UTF-8. Files that are not valid
// UTF-8 are read as Shift_JIS.
func decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return string(data), nil
	}
	reader := transform.NewReader(bytes.NewReader(data), japanese.ShiftJIS.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(decoded) {
		return "", errors.New("csa: failed to decode Shift_JIS")
	}
	return string(decoded), nil
}

// splitLines splits text into statements, dropping comments and blank
// lines. Move and position lines may hold several statements separated
// by commas; header lines are kept whole.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || line[0] == '\'' {
			continue
		}
		if line[0] == 'N' || line[0] == '$' {
			out = append(out, line)
			continue
		}
		for _, stmt := range strings.Split(line, ",") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			// Rank lines keep their blank cells.
			if stmt[0] != 'P' {
				stmt = strings.TrimSpace(stmt)
			}
			out = append(out, stmt)
		}
	}
	return out
}

// parseHeaderTime accepts a date with or without the time of day.
func parseHeaderTime(s string) (time.Time, bool) {
	for _, layout := range []string{timeLayout, "2006/01/02"} {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(s), time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Parse reads a CSA record. Every move is checked for legality.
func Parse(r io.Reader) (*record.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, err := decode(data)
	if err != nil {
		return nil, err
	}
	lines := splitLines(text)
	i := 0
	peek := func(prefix string) bool {
		return i < len(lines) && strings.HasPrefix(lines[i], prefix)
	}

	if peek("V") {
		if v := lines[i]; v != "V2.2" && v != "V2.1" && v != "V2" {
			return nil, formatErr("unsupported version %q", v)
		}
		i++
	}

	var info record.GameInfo
	for ; peek("N") || peek("$"); i++ {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, prefixBlack):
			info.BlackName = line[len(prefixBlack):]
		case strings.HasPrefix(line, prefixWhite):
			info.WhiteName = line[len(prefixWhite):]
		case strings.HasPrefix(line, prefixEvent):
			info.Event = line[len(prefixEvent):]
		case strings.HasPrefix(line, prefixSite):
			info.Site = line[len(prefixSite):]
		case strings.HasPrefix(line, prefixOpening):
			info.Opening = line[len(prefixOpening):]
		case strings.HasPrefix(line, prefixStartTime):
			info.StartTime, _ = parseHeaderTime(line[len(prefixStartTime):])
		case strings.HasPrefix(line, prefixEndTime):
			info.EndTime, _ = parseHeaderTime(line[len(prefixEndTime):])
		}
	}

	var s setup
	for ; peek("P"); i++ {
		if err := s.parseLine(lines[i]); err != nil {
			return nil, err
		}
	}
	if i == len(lines) || (lines[i] != "+" && lines[i] != "-") {
		return nil, formatErr("missing side to move")
	}
	side, _ := parseColor(lines[i])
	i++
	pos, err := s.position(side)
	if err != nil {
		return nil, err
	}

	rec := record.New(pos)
	rec.Info = info
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, "%") {
			rec.Result = line[1:]
			break
		}
		if !strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "-") {
			return nil, formatErr("unexpected line %q", line)
		}

		m, err := ParseMove(line, pos)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", len(rec.Moves)+1, err)
		}
		if !pos.IsLegalMove(m) {
			return nil, fmt.Errorf("move %d (%s): %w", len(rec.Moves)+1, line, record.ErrIllegalMove)
		}
		pos.MakeMove(m)

		elapsed := time.Duration(-1)
		if next := i + 1; next < len(lines) && strings.HasPrefix(lines[next], "T") {
			if elapsed, err = ParseTime(lines[next]); err != nil {
				return nil, err
			}
			i++
		}
		rec.Append(m, elapsed)
	}
	return rec, nil
}

// Write writes rec as a UTF-8 CSA V2.2 record.
func Write(w io.Writer, rec *record.Record) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("V2.2\n")
	writeHeader := func(prefix, value string) {
		if value != "" {
			bw.WriteString(prefix + value + "\n")
		}
	}
	writeHeader(prefixBlack, rec.Info.BlackName)
	writeHeader(prefixWhite, rec.Info.WhiteName)
	writeHeader(prefixEvent, rec.Info.Event)
	writeHeader(prefixSite, rec.Info.Site)
	if !rec.Info.StartTime.IsZero() {
		writeHeader(prefixStartTime, rec.Info.StartTime.Format(timeLayout))
	}
	if !rec.Info.EndTime.IsZero() {
		writeHeader(prefixEndTime, rec.Info.EndTime.Format(timeLayout))
	}
	writeHeader(prefixOpening, rec.Info.Opening)

	start, err := rec.Start()
	if err != nil {
		return err
	}
	if start.SFEN() == board.StartSFEN {
		bw.WriteString("PI\n+\n")
	} else {
		bw.WriteString(FormatPosition(start))
	}

	_, err = rec.ReplayFunc(func(ply int, pos *board.Position) error {
		if ply == len(rec.Moves) {
			return nil
		}
		mi := rec.Moves[ply]
		bw.WriteString(FormatMove(mi.Move, pos) + "\n")
		if mi.HasElapsed {
			bw.WriteString(FormatTime(mi.Elapsed) + "\n")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if rec.Result != "" {
		bw.WriteString("%" + rec.Result + "\n")
	}
	return bw.Flush()
}
