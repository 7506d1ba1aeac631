package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"dinotrek.io/internal/persistence/indexdb"
	persistlog "dinotrek.io/internal/persistence/log"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "state":
			stateCmd(os.Args[2:])
			return
		case "session":
			sessionCmd(os.Args[2:])
			return
		case "digest":
			digestCmd(os.Args[2:])
			return
		case "events":
			eventsCmd(os.Args[2:])
			return
		}
	}
	listCmd(os.Args[1:])
}

func worldFlags(name string) (*flag.FlagSet, *string, *string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	worldID := fs.String("world", "world_1", "world id")
	return fs, dataDir, worldID
}

func listCmd(args []string) {
	fs := flag.NewFlagSet("admin", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	_ = fs.Parse(args)

	entries, err := os.ReadDir(filepath.Join(*dataDir, "worlds"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "read:", err)
		os.Exit(1)
	}
	for _, e := range entries {
		if e.IsDir() {
			fmt.Println(e.Name())
		}
	}
}

func sessionCmd(args []string) {
	fs, dataDir, worldID := worldFlags("session")
	_ = fs.Parse(args)

	s, err := persistlog.ReadSession(filepath.Join(*dataDir, "worlds", *worldID))
	if err != nil {
		fmt.Fprintln(os.Stderr, "session:", err)
		os.Exit(1)
	}
	out, _ := yaml.Marshal(s)
	fmt.Print(string(out))
}

func digestCmd(args []string) {
	fs, dataDir, worldID := worldFlags("digest")
	tick := fs.Uint64("tick", 0, "tick to look up (required)")
	_ = fs.Parse(args)
	if *tick == 0 {
		fmt.Fprintln(os.Stderr, "missing -tick")
		os.Exit(2)
	}

	idx := openIndex(*dataDir, *worldID)
	defer idx.Close()
	d, err := lookupDigest(idx, *tick)
	if err != nil {
		fmt.Fprintln(os.Stderr, "digest:", err)
		os.Exit(1)
	}
	if d == "" {
		fmt.Fprintf(os.Stderr, "tick %d not indexed\n", *tick)
		os.Exit(1)
	}
	fmt.Println(d)
}

func eventsCmd(args []string) {
	fs, dataDir, worldID := worldFlags("events")
	_ = fs.Parse(args)

	idx := openIndex(*dataDir, *worldID)
	defer idx.Close()
	lines, err := eventSummary(idx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "events:", err)
		os.Exit(1)
	}
	fmt.Println(strings.Join(lines, "\n"))
}

func openIndex(dataDir, worldID string) *indexdb.SQLiteIndex {
	path := filepath.Join(dataDir, "worlds", worldID, "index", "world.sqlite")
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(os.Stderr, "index:", err)
		os.Exit(1)
	}
	idx, err := indexdb.OpenSQLite(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	return idx
}

func lookupDigest(idx *indexdb.SQLiteIndex, tick uint64) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return idx.TickDigest(ctx, tick)
}

// eventSummary renders per-kind event counts, one "KIND count" line each.
func eventSummary(idx *indexdb.SQLiteIndex) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	counts, err := idx.EventCounts(ctx)
	if err != nil {
		return nil, err
	}
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, fmt.Sprintf("%-12s %d", k, counts[k]))
	}
	return out, nil
}
