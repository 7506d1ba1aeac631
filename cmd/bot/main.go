package main

import (
	"encoding/json"
	"flag"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"

	"dinotrek.io/internal/logging"
	"dinotrek.io/internal/protocol"
)

func main() {
	var (
		url  = flag.String("url", "ws://localhost:8080/v1/ws", "ws url")
		name = flag.String("name", "bot", "client name")
	)
	flag.Parse()

	logger := logging.Component(logging.FromEnv(), "bot")
	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	hello := protocol.HelloMsg{
		Type:            protocol.TypeHello,
		ProtocolVersion: protocol.Version,
		ClientName:      *name,
	}
	if err := conn.WriteJSON(hello); err != nil {
		logger.Fatalf("send HELLO: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	go func() {
		<-stop
		_ = conn.Close()
	}()

	var held []string
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.WithError(err).Info("disconnected")
			return
		}
		base, err := protocol.DecodeBase(msg)
		if err != nil {
			continue
		}
		switch base.Type {
		case protocol.TypeWelcome:
			var w protocol.WelcomeMsg
			if err := json.Unmarshal(msg, &w); err != nil {
				continue
			}
			logger.Infof("WELCOME session=%s character=%s tick_rate=%d parts=%d",
				w.SessionID, w.CharacterID, w.WorldParams.TickRateHz, w.WorldParams.TotalParts)

		case protocol.TypeError:
			var e protocol.ErrorMsg
			if err := json.Unmarshal(msg, &e); err == nil {
				logger.Warnf("ERROR %s: %s", e.Code, e.Message)
			}

		case protocol.TypeFrame:
			var f protocol.FrameMsg
			if err := json.Unmarshal(msg, &f); err != nil {
				continue
			}
			if f.Outcome != "" && f.Outcome != "exploring" {
				logger.Infof("session over at tick %d: %s", f.Tick, f.Outcome)
				return
			}
			if f.Tick%100 == 0 {
				logger.Infof("tick=%d pos=%v parts=%d/%d hp=%.0f",
					f.Tick, f.Camera.Target, f.HUD.Parts.Carried, f.HUD.Parts.Needed, f.HUD.Health.Current)
			}
			cmds := steer(&f)
			if sameCommands(cmds, held) {
				continue
			}
			held = cmds
			if err := conn.WriteJSON(protocol.CommandsMsg{
				Type:            protocol.TypeCommands,
				ProtocolVersion: protocol.Version,
				Commands:        cmds,
			}); err != nil {
				logger.WithError(err).Warn("send COMMANDS")
				return
			}
		}
	}
}
