package main

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"dinotrek.io/internal/logging"
	"dinotrek.io/internal/persistence/indexdb"
	"dinotrek.io/internal/sim/world"
	"dinotrek.io/internal/transport/observer"
	"dinotrek.io/internal/transport/ws"
)

func newMux(w *world.World, idx runtimeIndex, root *logrus.Logger) *http.ServeMux {
	logger := logging.Component(root, "http")
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", metricsHandler(w, idx))
	mux.HandleFunc("/v1/ws", ws.NewServer(w, logging.Component(root, "ws")).Handler())

	obsSrv := observer.NewServer(w, logging.Component(root, "observer"))
	mux.HandleFunc("/observer/bootstrap", obsSrv.BootstrapHandler())
	mux.HandleFunc("/observer/ws", obsSrv.WSHandler())

	// Local-only; reads the published metrics, never the live world.
	mux.HandleFunc("/admin/v1/state", func(rw http.ResponseWriter, r *http.Request) {
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		resp := struct {
			WorldID string             `json:"world_id"`
			Seed    int64              `json:"seed"`
			Metrics world.WorldMetrics `json:"metrics"`
			Index   *indexdb.Stats     `json:"index,omitempty"`
		}{
			WorldID: w.ID(),
			Seed:    w.Config().Seed,
			Metrics: w.Metrics(),
		}
		if idx != nil {
			s := idx.Stats()
			resp.Index = &s
		}
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(resp)
	})

	if envBool("DT_ENABLE_PPROF_HTTP", false) {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	} else {
		logger.Debug("pprof endpoints disabled (DT_ENABLE_PPROF_HTTP=false)")
	}
	return mux
}

func metricsHandler(w *world.World, idx runtimeIndex) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")

		id := w.ID()
		m := w.Metrics()

		// Minimal Prometheus exposition format.
		gauge(rw, "dinotrek_world_tick", "Current world tick.")
		fmt.Fprintf(rw, "dinotrek_world_tick{world=%q} %d\n", id, m.Tick)

		gauge(rw, "dinotrek_world_actors", "Live actors, character included.")
		fmt.Fprintf(rw, "dinotrek_world_actors{world=%q} %d\n", id, m.Actors)

		gauge(rw, "dinotrek_world_items", "Live items.")
		fmt.Fprintf(rw, "dinotrek_world_items{world=%q} %d\n", id, m.Items)

		gauge(rw, "dinotrek_world_subscribers", "Frame subscribers.")
		fmt.Fprintf(rw, "dinotrek_world_subscribers{world=%q} %d\n", id, m.Subscribers)

		gauge(rw, "dinotrek_world_loaded_chunks", "Cached terrain chunks.")
		fmt.Fprintf(rw, "dinotrek_world_loaded_chunks{world=%q} %d\n", id, m.LoadedChunks)

		gauge(rw, "dinotrek_world_queue_depth", "Channel backlog depth.")
		fmt.Fprintf(rw, "dinotrek_world_queue_depth{world=%q,queue=%q} %d\n", id, "inbox", m.QueueDepths.Inbox)
		fmt.Fprintf(rw, "dinotrek_world_queue_depth{world=%q,queue=%q} %d\n", id, "subscribe", m.QueueDepths.Subscribe)
		fmt.Fprintf(rw, "dinotrek_world_queue_depth{world=%q,queue=%q} %d\n", id, "unsubscribe", m.QueueDepths.Unsubscribe)

		gauge(rw, "dinotrek_world_step_ms", "Last tick step duration in milliseconds.")
		fmt.Fprintf(rw, "dinotrek_world_step_ms{world=%q} %.3f\n", id, m.StepMS)

		gauge(rw, "dinotrek_character_health", "Character health.")
		fmt.Fprintf(rw, "dinotrek_character_health{world=%q} %.3f\n", id, m.Health)

		gauge(rw, "dinotrek_character_parts", "Time machine parts carried.")
		fmt.Fprintf(rw, "dinotrek_character_parts{world=%q} %d\n", id, m.Parts)

		gauge(rw, "dinotrek_session_outcome", "1 for the current session outcome.")
		fmt.Fprintf(rw, "dinotrek_session_outcome{world=%q,outcome=%q} 1\n", id, m.Outcome)

		writeIndexMetrics(rw, id, idx)
	}
}

func writeIndexMetrics(rw http.ResponseWriter, id string, idx runtimeIndex) {
	if idx == nil {
		return
	}
	s := idx.Stats()
	gauge(rw, "dinotrek_index_queue_depth", "Index writer queue depth.")
	fmt.Fprintf(rw, "dinotrek_index_queue_depth{world=%q} %d\n", id, s.QueueDepth)
	gauge(rw, "dinotrek_index_queue_capacity", "Index writer queue capacity.")
	fmt.Fprintf(rw, "dinotrek_index_queue_capacity{world=%q} %d\n", id, s.QueueCapacity)

	fmt.Fprintf(rw, "# HELP dinotrek_index_dropped_total Index writes dropped because the queue was full.\n")
	fmt.Fprintf(rw, "# TYPE dinotrek_index_dropped_total counter\n")
	fmt.Fprintf(rw, "dinotrek_index_dropped_total{world=%q,kind=%q} %d\n", id, "tick", s.DropTickTotal)
	fmt.Fprintf(rw, "dinotrek_index_dropped_total{world=%q,kind=%q} %d\n", id, "event", s.DropEventTotal)

	fmt.Fprintf(rw, "# HELP dinotrek_index_write_errors_total Failed index statements.\n")
	fmt.Fprintf(rw, "# TYPE dinotrek_index_write_errors_total counter\n")
	fmt.Fprintf(rw, "dinotrek_index_write_errors_total{world=%q} %d\n", id, s.WriteErrorTotal)
}

func gauge(rw http.ResponseWriter, name, help string) {
	fmt.Fprintf(rw, "# HELP %s %s\n", name, help)
	fmt.Fprintf(rw, "# TYPE %s gauge\n", name)
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
