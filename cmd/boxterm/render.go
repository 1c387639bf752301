package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gookit/color"

	"github.com/wricardo/mcp-training/fibbox/game/engine"
	"github.com/wricardo/mcp-training/fibbox/game/input"
)

const clearScreen = "\x1b[H\x1b[2J"

var (
	stylePlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	styleBox    = color.Style{color.FgYellow, color.OpBold}
	styleEmpty  = color.Style{color.FgGray}
	styleTitle  = color.Style{color.FgCyan, color.OpBold}
	styleStatus = color.Style{color.FgMagenta}
	styleFull   = color.Style{color.FgRed, color.OpBold}
)

// renderFrame draws the whole board. The screen is cleared and redrawn
// every frame; lines end in \r\n because the terminal is in raw mode.
func renderFrame(state *engine.GameState, sessionID, status string) string {
	var b strings.Builder
	b.WriteString(clearScreen)

	if state == nil {
		b.WriteString("waiting for board...\r\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%s  session %s  boxes %d  free %d  ticks %d\r\n\r\n",
		styleTitle.Sprint(state.ConfigName), sessionID, len(state.Boxes), state.FreeCells, state.TickCount)

	for _, line := range boardLines(state) {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")

	if state.BoardFull {
		b.WriteString(styleFull.Sprint("board full") + "\r\n")
	}
	if state.Message != "" {
		b.WriteString(state.Message + "\r\n")
	}
	if status != "" {
		b.WriteString(styleStatus.Sprint(status) + "\r\n")
	}
	b.WriteString(styleEmpty.Sprint("arrows/wasd/hjkl move, ctrl+r reset, q quit") + "\r\n")
	return b.String()
}

// boardLines lays the grid out top row first: columns follow X, rows follow
// Y with the highest Y at the top. Boxes show their label.
func boardLines(state *engine.GameState) []string {
	g := state.Grid
	if g.CellSize <= 0 || g.Columns <= 0 || g.Rows <= 0 {
		return nil
	}

	cells := make(map[engine.Position]string, len(state.Boxes)+1)
	width := len("@")
	for _, box := range state.Boxes {
		cells[box.Pos] = box.Label
		width = max(width, len(box.Label))
	}

	lines := make([]string, 0, g.Rows)
	for row := g.Rows - 1; row >= 0; row-- {
		parts := make([]string, 0, g.Columns)
		for col := 0; col < g.Columns; col++ {
			pos := engine.Position{X: col * g.CellSize, Y: row * g.CellSize}
			parts = append(parts, renderCell(pos, state.Player.Pos, cells, width))
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}

func renderCell(pos, player engine.Position, boxes map[engine.Position]string, width int) string {
	if pos == player {
		return stylePlayer.Sprint(pad("@", width))
	}
	if label, ok := boxes[pos]; ok {
		return styleBox.Sprint(pad(label, width))
	}
	return styleEmpty.Sprint(pad(".", width))
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

// keyDecoder turns raw terminal reads into key names. Escape sequences split
// across reads are held until complete.
type keyDecoder struct {
	buf []byte
}

func (d *keyDecoder) Feed(p []byte) []string {
	d.buf = append(d.buf, p...)

	var keys []string
	for len(d.buf) > 0 {
		key, n := input.DecodeTerminal(d.buf)
		if n == 0 {
			break
		}
		d.buf = d.buf[n:]
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// isQuit reports whether key ends the client
func isQuit(key string) bool {
	return key == input.KeyQuit || key == "q" || key == "Q"
}

// wsURL derives the WebSocket endpoint for a session from the server URL
func wsURL(base, sessionID string) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = u.Path + "/ws"
	u.RawQuery = url.Values{"session": {sessionID}}.Encode()
	return u.String(), nil
}
