package isoloot

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ScriptOptions controls how simulated time passes while running a script
type ScriptOptions struct {
	Step   float64 // seconds per tick
	Gap    float64 // seconds simulated after each command
	Settle float64 // seconds simulated after the last line
}

// DefaultScriptOptions ticks at 60Hz with no gap and a 5 second settle
var DefaultScriptOptions = ScriptOptions{Step: 1.0 / 60, Gap: 0, Settle: 5}

// Advance runs Update in steps of at most step seconds until seconds have
// passed. It returns the number of ticks run.
func Advance(state *GameState, seconds, step float64) int {
	if step <= 0 {
		step = DefaultScriptOptions.Step
	}

	ticks := 0
	for remaining := seconds; remaining > 1e-9; remaining -= step {
		dt := step
		if remaining < step {
			dt = remaining
		}
		state.Update(dt)
		ticks++
	}
	return ticks
}

// RunScript feeds prompt lines from r into state. Blank lines and lines
// starting with # are skipped; "wait <seconds>" only advances time. Bad
// commands are reported in the message log and do not stop the script.
func RunScript(state *GameState, r io.Reader, options ScriptOptions) error {
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if len(text) == 0 || strings.HasPrefix(text, "#") {
			continue
		}

		if seconds, ok := waitDirective(text); ok {
			if seconds < 0 {
				return fmt.Errorf("line %d: negative wait", line)
			}
			Advance(state, seconds, options.Step)
			continue
		}

		HandlePrompt(state, text)
		Advance(state, options.Gap, options.Step)
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	Advance(state, options.Settle, options.Step)
	return nil
}

func waitDirective(text string) (float64, bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "wait") {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, false
	}
	return seconds, true
}
