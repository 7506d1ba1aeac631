package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"dinotrek.io/internal/logging"
)

func main() {
	var (
		dataDir   = flag.String("data", "./data", "runtime data directory")
		worldID   = flag.String("world", "world_1", "world id")
		configDir = flag.String("configs", "", "config directory (defaults to the one recorded in session.yaml)")
		toTick    = flag.Uint64("to_tick", 0, "stop at tick (inclusive, optional)")
		events    = flag.Bool("events", false, "also summarize the event journal")
	)
	flag.Parse()

	logger := logging.Component(logging.FromEnv(), "replay")
	worldDir := filepath.Join(*dataDir, "worlds", *worldID)

	res, err := replayWorld(worldDir, *configDir, *toTick, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "replay:", err)
		os.Exit(1)
	}
	fmt.Printf("replay ok: world=%s seed=%d checked=%d ticks last=%d outcome=%s\n",
		*worldID, res.Seed, res.Checked, res.LastTick, res.Outcome)

	if !*events {
		return
	}
	counts, err := countEvents(worldDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "events:", err)
		os.Exit(1)
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("%-12s %d\n", k, counts[k])
	}
}
