package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"dinotrek.io/internal/logging"
	"dinotrek.io/internal/protocol"
	"dinotrek.io/internal/sim/world"
	"dinotrek.io/internal/transport/rates"
)

// Server accepts the single player that drives a world. Further HELLOs are
// refused with E_WORLD_BUSY until the player disconnects.
type Server struct {
	world *world.World
	log   *logrus.Entry

	upgrader websocket.Upgrader
	attached atomic.Bool
	nextID   atomic.Uint64

	// MaxCommandsPerSecond caps COMMANDS messages per session; 0 disables.
	MaxCommandsPerSecond int
}

func NewServer(w *world.World, logger *logrus.Entry) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		world:                w,
		log:                  logger,
		MaxCommandsPerSecond: 4 * w.TickRateHz(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
	return s
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sid := s.handshake(conn)
		if sid == "" {
			return
		}
		defer s.attached.Store(false)
		log := s.log.WithField("session", sid)
		log.Info("player attached")

		out := make(chan []byte, 8)
		select {
		case s.world.Subscribe() <- world.FrameSubscription{ID: sid, Out: out}:
		case <-s.world.Done():
			return
		}
		defer s.world.Leave(sid)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		var limit rates.Window
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			cmds, code, reason := decodeCommands(msg)
			if code != "" {
				log.WithField("code", code).Debug(reason)
				sendError(out, code, reason)
				continue
			}
			if ok, retry := limit.Allow(time.Now().UnixMilli(), 1000, s.MaxCommandsPerSecond); !ok {
				sendError(out, protocol.ErrRateLimited, fmt.Sprintf("too many COMMANDS, retry in %dms", retry))
				continue
			}
			s.hold(cmds)
		}

		// Release every held key so the character stops.
		s.hold(nil)
		log.Info("player detached")
	}
}

func (s *Server) hold(cmds []string) {
	select {
	case s.world.Inbox() <- world.CommandEnvelope{Commands: cmds}:
	case <-time.After(time.Second):
		s.log.Warn("world inbox full; commands dropped")
	}
}

// decodeCommands returns an error code and reason for anything that is not
// a well-formed COMMANDS message of this protocol version.
func decodeCommands(msg []byte) (cmds []string, code, reason string) {
	base, err := protocol.DecodeBase(msg)
	if err != nil {
		return nil, protocol.ErrProtoBadRequest, "invalid json"
	}
	if base.Type != protocol.TypeCommands {
		return nil, protocol.ErrProtoBadRequest, fmt.Sprintf("unexpected %s", base.Type)
	}
	var m protocol.CommandsMsg
	if err := json.Unmarshal(msg, &m); err != nil {
		return nil, protocol.ErrProtoBadRequest, "bad COMMANDS"
	}
	if m.ProtocolVersion != protocol.Version {
		return nil, protocol.ErrProtoVersion, "bad protocol_version"
	}
	for _, c := range m.Commands {
		if strings.TrimSpace(c) == "" || len(c) > 64 {
			return nil, protocol.ErrBadCommand, "empty or oversized command"
		}
	}
	return m.Commands, "", ""
}

func (s *Server) handshake(conn *websocket.Conn) (sid string) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return ""
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		refuse(conn, protocol.ErrProtoBadRequest, "expected HELLO", websocket.ClosePolicyViolation)
		return ""
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		refuse(conn, protocol.ErrProtoBadRequest, "bad HELLO", websocket.ClosePolicyViolation)
		return ""
	}
	if hello.ProtocolVersion != protocol.Version {
		refuse(conn, protocol.ErrProtoVersion, "bad protocol_version", websocket.ClosePolicyViolation)
		return ""
	}
	if o := s.world.Metrics().Outcome; o != "" && o != string(world.OutcomeExploring) {
		refuse(conn, protocol.ErrWorldEnded, "session is "+o, websocket.CloseNormalClosure)
		return ""
	}
	ch := s.world.Character()
	if ch == nil {
		refuse(conn, protocol.ErrInternal, "world not set up", websocket.CloseInternalServerErr)
		return ""
	}
	if !s.attached.CompareAndSwap(false, true) {
		refuse(conn, protocol.ErrWorldBusy, "a player is already attached", websocket.CloseTryAgainLater)
		return ""
	}
	if hello.ClientName == "" {
		hello.ClientName = "client"
	}

	sid = fmt.Sprintf("S%d", s.nextID.Add(1))
	cfg := s.world.Config()
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       sid,
		CharacterID:     ch.ID,
		WorldParams: protocol.WorldParams{
			TickRateHz:  cfg.TickRateHz,
			ChunkSize:   cfg.Layout.ChunkSize,
			Segments:    cfg.Layout.Segments(),
			TextureSize: cfg.Layout.TextureSize,
			TotalParts:  s.world.Catalogs().TotalParts(),
		},
		CatalogDigest: s.world.Catalogs().Digest,
	}
	if err := writeJSON(conn, welcome); err != nil {
		s.attached.Store(false)
		return ""
	}
	s.log.WithFields(logrus.Fields{"session": sid, "client": hello.ClientName}).Debug("welcome sent")
	return sid
}

func refuse(conn *websocket.Conn, code, reason string, closeCode int) {
	_ = writeJSON(conn, protocol.NewError(code, reason))
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(closeCode, reason), time.Now().Add(time.Second))
}

// sendError queues an ERROR behind any pending frames without blocking.
func sendError(out chan []byte, code, reason string) {
	b, err := json.Marshal(protocol.NewError(code, reason))
	if err != nil {
		return
	}
	select {
	case out <- b:
	default:
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
