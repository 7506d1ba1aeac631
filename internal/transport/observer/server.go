package observer

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"dinotrek.io/internal/logging"
	"dinotrek.io/internal/protocol"
	"dinotrek.io/internal/sim/world"
)

// BootstrapResponse tells an observer how to interpret FRAME and CHUNKS.
type BootstrapResponse struct {
	ProtocolVersion string               `json:"protocol_version"`
	WorldID         string               `json:"world_id"`
	Tick            uint64               `json:"tick"`
	WorldParams     protocol.WorldParams `json:"world_params"`
	CatalogDigest   string               `json:"catalog_digest"`
	Metrics         world.WorldMetrics   `json:"metrics"`
}

// Server streams frames and terrain to read-only observers on loopback.
type Server struct {
	world *world.World
	log   *logrus.Entry

	upgrader websocket.Upgrader
	nextID   atomic.Uint64
}

func NewServer(w *world.World, logger *logrus.Entry) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		world: w,
		log:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) BootstrapHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		cfg := s.world.Config()
		resp := BootstrapResponse{
			ProtocolVersion: protocol.Version,
			WorldID:         cfg.ID,
			Tick:            s.world.CurrentTick(),
			WorldParams: protocol.WorldParams{
				TickRateHz:  cfg.TickRateHz,
				ChunkSize:   cfg.Layout.ChunkSize,
				Segments:    cfg.Layout.Segments(),
				TextureSize: cfg.Layout.TextureSize,
				TotalParts:  s.world.Catalogs().TotalParts(),
			},
			CatalogDigest: s.world.Catalogs().Digest,
			Metrics:       s.world.Metrics(),
		}

		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(resp)
	}
}

func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Handshake: must send SUBSCRIBE first.
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		sub, ok := decodeSubscribe(msg)
		if !ok {
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected SUBSCRIBE"), time.Now().Add(time.Second))
			return
		}

		sid := fmt.Sprintf("O%d", s.nextID.Add(1))
		tickOut := make(chan []byte, 8)
		dataOut := make(chan []byte, 256)
		subscribe := func(sub protocol.SubscribeMsg) bool {
			req := world.FrameSubscription{
				ID:          sid,
				Out:         tickOut,
				Chunks:      dataOut,
				ChunkRadius: sub.ChunkRadius,
				MaxChunks:   sub.MaxChunks,
			}
			select {
			case s.world.Subscribe() <- req:
				return true
			default:
				return false
			}
		}
		if !subscribe(sub) {
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "server busy"), time.Now().Add(time.Second))
			return
		}
		defer s.world.Leave(sid)
		s.log.WithFields(logrus.Fields{"session": sid, "chunk_radius": sub.ChunkRadius}).Info("observer attached")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine. Pending terrain is always written before the
		// next frame.
		writeErr := make(chan error, 1)
		go func() {
			write := func(b []byte) error {
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				return conn.WriteMessage(websocket.TextMessage, b)
			}
			for {
				select {
				case b := <-dataOut:
					if err := write(b); err != nil {
						writeErr <- err
						return
					}
					continue
				default:
				}
				select {
				case <-ctx.Done():
					writeErr <- ctx.Err()
					return
				case b := <-dataOut:
					if err := write(b); err != nil {
						writeErr <- err
						return
					}
				case b := <-tickOut:
					if err := write(b); err != nil {
						writeErr <- err
						return
					}
				}
			}
		}()

		// Reader loop: a new SUBSCRIBE replaces the old one and resends terrain.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			sub, ok := decodeSubscribe(msg)
			if !ok {
				continue
			}
			// Drop updates under load; the client may resend.
			_ = subscribe(sub)
		}

		cancel()
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))

		// Best-effort wait for the writer to stop so it doesn't outlive conn.
		select {
		case <-writeErr:
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func decodeSubscribe(msg []byte) (protocol.SubscribeMsg, bool) {
	var sub protocol.SubscribeMsg
	if err := json.Unmarshal(msg, &sub); err != nil {
		return sub, false
	}
	if sub.Type != protocol.TypeSubscribe || sub.ProtocolVersion != protocol.Version {
		return sub, false
	}
	normalizeSubscribe(&sub)
	return sub, true
}

func normalizeSubscribe(sub *protocol.SubscribeMsg) {
	if sub.ChunkRadius <= 0 {
		sub.ChunkRadius = 3
	}
	if sub.ChunkRadius > 16 {
		sub.ChunkRadius = 16
	}
	if sub.MaxChunks <= 0 {
		sub.MaxChunks = 16
	}
	if sub.MaxChunks > 256 {
		sub.MaxChunks = 256
	}
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
