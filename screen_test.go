package isoloot

import (
	"strings"

	. "gopkg.in/check.v1"
)

type ScreenSuite struct{}

var _ = Suite(&ScreenSuite{})

func (s *ScreenSuite) snapshot() Snapshot {
	state := NewGameState(1)
	state.GenerateMap(12, 12)
	state.AddAgent("Atlas", 2, 2, "#e74c3c")
	state.AddAgent("Nova", 6, 4, "#3498db")
	HandlePrompt(state, "Nova say hi")
	state.GetAgent("Atlas").EnqueueGather("wood")
	state.Update(0.1)
	return state.Snapshot()
}

func (s *ScreenSuite) TestRenderFrame(c *C) {
	frame := renderFrame(s.snapshot(), "atlas expl", 100, 30)

	for _, want := range []string{
		"ISO Loot",
		"tick 1",
		"Atlas",
		"Atlas is gathering wood",
		"Nova is idle at (6, 4)",
		"Inventory: empty",
		"\"hi\"",
		"> Nova say hi",
		"atlas expl",
	} {
		c.Assert(strings.Contains(frame, want), Equals, true, Commentf("missing %q", want))
	}
}

func (s *ScreenSuite) TestTooSmall(c *C) {
	frame := renderFrame(s.snapshot(), "", 40, 10)
	c.Assert(strings.Contains(frame, "Screen is too small"), Equals, true)
	c.Assert(strings.Contains(frame, "Atlas"), Equals, false)
}

func (s *ScreenSuite) TestHexTo256(c *C) {
	c.Assert(hexTo256("#ff0000"), Equals, 196)
	c.Assert(hexTo256("#000"), Equals, 16)
	c.Assert(hexTo256("ffffff"), Equals, 231)
	c.Assert(hexTo256("#zzzzzz"), Equals, 15)
	c.Assert(hexTo256(""), Equals, 15)
}

func (s *ScreenSuite) TestClip(c *C) {
	c.Assert(clip("hello", 3), Equals, "he…")
	c.Assert(clip("hi", 5), Equals, "hi")
	c.Assert(clip("hello", 1), Equals, "…")
	c.Assert(clip("hello", 0), Equals, "")
}

func (s *ScreenSuite) TestAgentGlyph(c *C) {
	c.Assert(agentGlyph("nova"), Equals, "N")
	c.Assert(agentGlyph(""), Equals, "@")
}
