// Command boxterm plays a session from a terminal. Keys are read in raw mode
// and forwarded to the server's key endpoint; board updates, including the
// periodic spawns, arrive over the session WebSocket and redraw the screen.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"
	"golang.org/x/term"

	"github.com/wricardo/mcp-training/fibbox/api"
	"github.com/wricardo/mcp-training/fibbox/game/engine"
	"github.com/wricardo/mcp-training/fibbox/game/input"
)

// wsMessage mirrors the hub's broadcast message
type wsMessage struct {
	SessionID string            `json:"session_id"`
	GameState *engine.GameState `json:"game_state,omitempty"`
	Event     string            `json:"event,omitempty"`
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	sessionID := flag.String("session", "", "Join an existing session by ID")
	configName := flag.String("config", "", "Board configuration for a new session")
	flag.Parse()

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		log.Fatal("boxterm needs an interactive terminal")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := api.NewClient(*serverURL)

	id := *sessionID
	var state *engine.GameState
	if id != "" {
		info, err := client.GetSession(ctx, id)
		if err != nil {
			log.Fatalf("Failed to join session %s: %v", id, err)
		}
		state = info.GameState
	} else {
		info, err := client.CreateSession(ctx, *configName)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		id, state = info.ID, info.GameState
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		log.Fatalf("Failed to enter raw mode: %v", err)
	}
	defer term.Restore(fd, oldState)

	if err := play(ctx, client, *serverURL, id, state); err != nil {
		term.Restore(fd, oldState)
		log.Fatal(err)
	}
	fmt.Print("\r\n")
}

func play(ctx context.Context, client *api.Client, serverURL, sessionID string, state *engine.GameState) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates := make(chan *engine.GameState, 16)
	if endpoint, err := wsURL(serverURL, sessionID); err == nil {
		go watch(ctx, endpoint, updates)
	}

	keys := make(chan []byte)
	go readStdin(ctx, keys)

	status := "session " + sessionID
	fmt.Print(renderFrame(state, sessionID, status))

	var decoder keyDecoder
	for {
		select {
		case <-ctx.Done():
			return nil

		case s := <-updates:
			state = s
			fmt.Print(renderFrame(state, sessionID, status))

		case chunk, ok := <-keys:
			if !ok {
				return nil
			}
			for _, key := range decoder.Feed(chunk) {
				if isQuit(key) {
					return nil
				}

				if key == input.KeyReset {
					s, err := client.Reset(ctx, sessionID)
					if err != nil {
						status = err.Error()
					} else {
						state, status = s, "reset"
					}
					continue
				}

				result, err := client.PressKey(ctx, sessionID, key)
				switch {
				case err != nil:
					status = err.Error()
				case !result.Mapped:
					status = fmt.Sprintf("key %q ignored", key)
				default:
					state = result.GameState
					status = result.Direction
					if result.Move != nil && !result.Move.Success {
						status += " blocked: " + string(result.Move.Reason)
					}
				}
			}
			fmt.Print(renderFrame(state, sessionID, status))
		}
	}
}

// watch forwards every snapshot broadcast on the session socket
func watch(ctx context.Context, endpoint string, updates chan<- *engine.GameState) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.GameState == nil {
			continue
		}
		select {
		case updates <- msg.GameState:
		case <-ctx.Done():
			return
		}
	}
}

func readStdin(ctx context.Context, out chan<- []byte) {
	defer close(out)
	buf := make([]byte, 64)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		chunk := append([]byte(nil), buf[:n]...)
		select {
		case out <- chunk:
		case <-ctx.Done():
			return
		}
	}
}
