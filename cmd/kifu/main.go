// Command kifu manages a local collection of CSA game records.
//
// Usage:
//
//	kifu [-db dir] import file.csa...
//	kifu [-db dir] list
//	kifu [-db dir] show id
//	kifu [-db dir] export id [file.csa]
//	kifu [-db dir] delete id
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/csa"
	"github.com/hailam/shogiplay/internal/storage"
)

var (
	dbDir     = flag.String("db", "", "database directory (default: platform data directory)")
	verbosity = flag.Int("v", 0, "log verbosity")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: kifu [flags] import|list|show|export|delete [args]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("kifu")

	if err := run(logger, flag.Arg(0), flag.Args()[1:]); err != nil {
		logger.Error(err, "command failed", "command", flag.Arg(0))
		os.Exit(1)
	}
}

func openStorage(logger logr.Logger) (*storage.Storage, error) {
	if *dbDir != "" {
		return storage.Open(*dbDir, logger)
	}
	return storage.NewStorage(logger)
}

func run(logger logr.Logger, cmd string, args []string) error {
	st, err := openStorage(logger)
	if err != nil {
		return err
	}
	defer st.Close()

	switch cmd {
	case "import":
		return importFiles(logger, st, args)
	case "list":
		return list(st, os.Stdout)
	case "show":
		if len(args) != 1 {
			return fmt.Errorf("show needs a record id")
		}
		return show(st, args[0], os.Stdout)
	case "export":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("export needs a record id and an optional file")
		}
		return export(st, args)
	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("delete needs a record id")
		}
		return st.DeleteRecord(args[0])
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func importFiles(logger logr.Logger, st *storage.Storage, files []string) error {
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		rec, err := csa.Parse(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		id, err := st.SaveRecord(rec)
		if err != nil {
			return err
		}
		logger.Info("imported", "file", name, "id", id, "moves", len(rec.Moves))
		fmt.Println(id)
	}
	return nil
}

func list(st *storage.Storage, w io.Writer) error {
	records, err := st.ListRecords()
	if err != nil {
		return err
	}
	for _, rec := range records {
		date := "-"
		if !rec.Info.StartTime.IsZero() {
			date = rec.Info.StartTime.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s  %s  %s vs %s  %d moves  %s\n",
			rec.ID, date, rec.Info.BlackName, rec.Info.WhiteName, len(rec.Moves), rec.Result)
	}
	return nil
}

func show(st *storage.Storage, id string, w io.Writer) error {
	rec, err := st.LoadRecord(id)
	if err != nil {
		return err
	}
	final, err := rec.Replay()
	if err != nil {
		return err
	}
	start, err := rec.Start()
	if err != nil {
		return err
	}
	moves := make([]board.Move, len(rec.Moves))
	for i, mi := range rec.Moves {
		moves[i] = mi.Move
	}

	fmt.Fprintf(w, "Black: %s\nWhite: %s\n", rec.Info.BlackName, rec.Info.WhiteName)
	if rec.Info.Event != "" {
		fmt.Fprintf(w, "Event: %s\n", rec.Info.Event)
	}
	for i, s := range board.MovesToWestern(start, moves) {
		fmt.Fprintf(w, "%4d %s\n", i+1, s)
	}

	fmt.Fprint(w, final.String())
	fmt.Fprintf(w, "sfen %s\n", final.SFEN())
	if rec.Result != "" {
		fmt.Fprintf(w, "Result: %s\n", strings.ToLower(rec.Result))
	}
	return nil
}

func export(st *storage.Storage, args []string) error {
	rec, err := st.LoadRecord(args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		return csa.Write(os.Stdout, rec)
	}

	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	if err := csa.Write(f, rec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
