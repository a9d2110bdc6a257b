package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/go-logr/stdr"

	"github.com/hailam/shogiplay/internal/usi"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	verbosity  = flag.Int("v", 0, "log verbosity")
)

func main() {
	flag.Parse()

	// USI owns stdout, so logs go to stderr.
	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("usi")

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		logger.Info("CPU profiling enabled", "path", profilePath)
	}

	protocol := usi.New(os.Stdin, os.Stdout, logger)
	if err := protocol.Run(); err != nil {
		logger.Error(err, "reading commands")
	}
}
