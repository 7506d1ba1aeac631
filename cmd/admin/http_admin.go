package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"dinotrek.io/internal/persistence/indexdb"
	"dinotrek.io/internal/sim/world"
)

// worldState mirrors the body of GET /admin/v1/state.
type worldState struct {
	WorldID string             `json:"world_id"`
	Seed    int64              `json:"seed"`
	Metrics world.WorldMetrics `json:"metrics"`
	Index   *indexdb.Stats     `json:"index"`
}

func stateCmd(args []string) {
	fs := flag.NewFlagSet("state", flag.ExitOnError)
	baseURL := fs.String("url", "http://127.0.0.1:8080", "server base url")
	raw := fs.Bool("json", false, "print the response body unformatted")
	_ = fs.Parse(args)

	body, err := fetchState(*baseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "state:", err)
		os.Exit(1)
	}
	if *raw {
		fmt.Println(strings.TrimSpace(string(body)))
		return
	}
	lines, err := formatState(body)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decode:", err)
		os.Exit(1)
	}
	fmt.Println(strings.Join(lines, "\n"))
}

func fetchState(baseURL string) ([]byte, error) {
	u := strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/admin/v1/state"
	cl := &http.Client{Timeout: 5 * time.Second}
	resp, err := cl.Get(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	return b, nil
}

// formatState renders a state body as "key value" lines.
func formatState(body []byte) ([]string, error) {
	var s worldState
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, err
	}
	m := s.Metrics
	row := func(k, format string, args ...any) string {
		return fmt.Sprintf("%-9s "+format, append([]any{k}, args...)...)
	}
	out := []string{
		row("world", "%s (seed %d)", s.WorldID, s.Seed),
		row("tick", "%d at %02d:%02d", m.Tick, m.Hour, m.Minute),
		row("outcome", "%s", m.Outcome),
		row("health", "%.1f", m.Health),
		row("parts", "%d", m.Parts),
		row("chunks", "%d", m.LoadedChunks),
		row("entities", "%d actors, %d items", m.Actors, m.Items),
		row("digest", "%s", m.Digest),
	}
	if s.Index != nil {
		out = append(out, row("index", "queue %d/%d, dropped %d ticks %d events, %d write errors",
			s.Index.QueueDepth, s.Index.QueueCapacity, s.Index.DropTickTotal, s.Index.DropEventTotal, s.Index.WriteErrorTotal))
	}
	return out, nil
}
