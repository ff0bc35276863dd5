package isoloot

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/ahmetb/go-cursor"
	"github.com/gliderlabs/ssh"
	"github.com/mgutz/ansi"
)

// Minimum terminal size for the console
const (
	minScreenWidth  = 80
	minScreenHeight = 20
)

// Screen represents a UI screen. For now, just an SSH terminal.
type Screen interface {
	Render(snap Snapshot, prompt string)
	Reset()
}

type terminalScreen struct {
	out      io.Writer
	mu       sync.Mutex
	width    int
	height   int
	renderct uint64
}

func (screen *terminalScreen) resize(width, height int) {
	screen.mu.Lock()
	defer screen.mu.Unlock()
	screen.width, screen.height = width, height
}

func (screen *terminalScreen) Render(snap Snapshot, prompt string) {
	screen.mu.Lock()
	defer screen.mu.Unlock()

	screen.renderct++
	io.WriteString(screen.out, renderFrame(snap, prompt, screen.width, screen.height))
}

func (screen *terminalScreen) Reset() {
	io.WriteString(screen.out, ansi.Reset+cursor.ClearEntireScreen()+cursor.MoveTo(1, 1))
}

func (screen *terminalScreen) watchResize(done <-chan struct{}, resizeChan <-chan ssh.Window) {
	for {
		select {
		case <-done:
			return
		case win, ok := <-resizeChan:
			if !ok {
				return
			}
			screen.resize(win.Width, win.Height)
			io.WriteString(screen.out, cursor.ClearEntireScreen())
		}
	}
}

// NewSSHScreen manages the window rendering for a console session
func NewSSHScreen(session ssh.Session) Screen {
	pty, resize, isPty := session.Pty()

	screen := &terminalScreen{out: session, width: pty.Window.Width, height: pty.Window.Height}

	if isPty {
		go screen.watchResize(session.Context().Done(), resize)
	}

	return screen
}

// hexTo256 maps "#rrggbb" onto the xterm 6x6x6 color cube
func hexTo256(hex string) int {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 15
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 15
	}

	level := func(c uint64) int { return int((c*5 + 127) / 255) }
	r, g, b := level(value>>16&0xff), level(value>>8&0xff), level(value&0xff)
	return 16 + 36*r + 6*g + b
}

func agentGlyph(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "@"
}

// renderFrame draws the map on the left, agents and log on the right and the
// prompt on the bottom row.
func renderFrame(snap Snapshot, prompt string, width, height int) string {
	var out strings.Builder

	if height < minScreenHeight || width < minScreenWidth {
		out.WriteString(cursor.ClearEntireScreen())
		out.WriteString(cursor.MoveTo(1, 1))
		out.WriteString("Screen is too small. Make your terminal larger.")
		return out.String()
	}

	reset := ansi.ColorCode("reset")
	header := ansi.ColorFunc("white+b:black")
	dim := ansi.ColorFunc("245")

	out.WriteString(cursor.MoveTo(1, 1))
	out.WriteString(cursor.ClearEntireLine())
	out.WriteString(header(fmt.Sprintf(" ISO Loot  tick %d ", snap.Tick)))

	occupied := make(map[[2]int]AgentView)
	for _, agent := range snap.Agents {
		occupied[[2]int{roundHalfUp(agent.X), roundHalfUp(agent.Y)}] = agent
	}

	mapRows := snap.Tiles.Height()
	if mapRows > height-4 {
		mapRows = height - 4
	}
	for y := 0; y < mapRows; y++ {
		out.WriteString(cursor.MoveTo(3+y, 2))
		for x := 0; x < snap.Tiles.Width(); x++ {
			kind, _ := snap.Tiles.At(x, y)
			style := TileStyles[kind]
			if agent, ok := occupied[[2]int{x, y}]; ok {
				out.WriteString(ansi.ColorCode(fmt.Sprintf("%d+b:%d", hexTo256(agent.Color), style.BGColor)))
				out.WriteString(agentGlyph(agent.Name) + " ")
			} else {
				out.WriteString(ansi.ColorCode(fmt.Sprintf("%d:%d", style.FGColor, style.BGColor)))
				out.WriteString(string(style.Glyph(x, y)) + " ")
			}
		}
		out.WriteString(reset)
	}

	panelCol := 2*snap.Tiles.Width() + 5
	panelWidth := width - panelCol
	row := 3
	line := func(text string) {
		if row >= height-1 {
			return
		}
		out.WriteString(cursor.MoveTo(row, panelCol))
		out.WriteString(cursor.ClearLineRight())
		out.WriteString(clip(text, panelWidth))
		row++
	}

	line(header(" Agents "))
	for _, agent := range snap.Agents {
		name := ansi.Color(agent.Name, fmt.Sprintf("%d+b", hexTo256(agent.Color)))
		line(name + " " + dim(fmt.Sprintf("[%s]", agent.State)))
		line("  " + clip(agent.Status, panelWidth-2))
		inventory := "empty"
		if len(agent.Inventory) > 0 {
			inventory = strings.Join(agent.Inventory, ", ")
		}
		line("  " + clip("Inventory: "+inventory, panelWidth-2))
		if agent.LastMessage != "" {
			line("  " + clip(fmt.Sprintf("\"%s\"", agent.LastMessage), panelWidth-2))
		}
	}

	row++
	line(header(" Log "))
	room := height - 1 - row
	messages := snap.Messages
	if room < 0 {
		room = 0
	}
	if len(messages) > room {
		messages = messages[len(messages)-room:]
	}
	for _, message := range messages {
		line(clip(message.Message, panelWidth))
	}
	for row < height-1 {
		out.WriteString(cursor.MoveTo(row, panelCol))
		out.WriteString(cursor.ClearLineRight())
		row++
	}

	out.WriteString(cursor.MoveTo(height, 1))
	out.WriteString(cursor.ClearEntireLine())
	out.WriteString(ansi.ColorCode("white+b") + "> " + reset + clip(prompt, width-3))

	return out.String()
}

// clip shortens plain text to width runes. Text with escape codes is left
// alone.
func clip(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if strings.ContainsRune(text, '\x1b') {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
