package main

import (
	"flag"
	"fmt"

	"github.com/younwookim/flume/internal/application/replay"
)

// runInspect prints a recording's header and frame statistics:
//
//	game inspect <file>
func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: game inspect <replay-file>")
	}

	data, err := replay.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Print(summarize(data))
	return nil
}

// summarize formats the header and per-input activity counts.
func summarize(data *replay.Data) string {
	var steering, jumps, tricks, stomps, dropMoves int
	for _, f := range data.Frames {
		if f.S != 0 {
			steering++
		}
		if f.JP {
			jumps++
		}
		if f.TF || f.TB {
			tricks++
		}
		if f.SP {
			stomps++
		}
		if f.DX != 0 || f.DY != 0 {
			dropMoves++
		}
	}

	out := fmt.Sprintf("version:  %s\nseed:     %d\ncourse:   %s\nstart:    %s\nframes:   %d (%.1fs at 60fps)\n",
		data.Version, data.Seed, data.Course, data.StartTime,
		len(data.Frames), float64(len(data.Frames))/60)
	out += fmt.Sprintf("activity: steer %d, jump %d, trick %d, stomp %d, swim %d\n",
		steering, jumps, tricks, stomps, dropMoves)
	return out
}
