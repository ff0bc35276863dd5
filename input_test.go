package isoloot

import (
	"bufio"
	"context"
	"strings"

	. "gopkg.in/check.v1"
)

type InputSuite struct{}

var _ = Suite(&InputSuite{})

func readKeys(c *C, input string) []string {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan inputEvent, 64)
	handleKeys(ctx, bufio.NewReader(strings.NewReader(input)), events, cancel)
	close(events)

	keys := make([]string, 0)
	for event := range events {
		if event.err != nil {
			c.Assert(event.err, Equals, errInputGone)
			keys = append(keys, "<gone>")
			continue
		}
		keys = append(keys, event.inputString)
	}
	c.Assert(ctx.Err(), NotNil)
	return keys
}

func (s *InputSuite) TestKeys(c *C) {
	keys := readKeys(c, "ab\x7f\r\x1b[A\x1b[B\t")
	c.Assert(keys, DeepEquals, []string{"a", "b", "BACKSPACE", "ENTER", "UP", "DOWN", "TAB", "<gone>"})
}

func (s *InputSuite) TestLoneEscape(c *C) {
	keys := readKeys(c, "\x1bq\x1b\x1b[C")
	c.Assert(keys, DeepEquals, []string{"ESCAPE", "q", "ESCAPE", "RIGHT", "<gone>"})
}

func (s *InputSuite) TestCtrlC(c *C) {
	keys := readKeys(c, "x\x03y")
	c.Assert(keys, DeepEquals, []string{"x", "<gone>"})
}

func (s *InputSuite) TestPromptEditing(c *C) {
	var prompt promptLine

	for _, key := range []string{"h", "i", "x", "BACKSPACE", "TAB"} {
		_, ok := prompt.HandleKey(key)
		c.Assert(ok, Equals, false)
	}
	c.Assert(prompt.String(), Equals, "hi")

	text, ok := prompt.HandleKey("ENTER")
	c.Assert(ok, Equals, true)
	c.Assert(text, Equals, "hi")
	c.Assert(prompt.String(), Equals, "")

	_, ok = prompt.HandleKey("ENTER")
	c.Assert(ok, Equals, false)
}

func (s *InputSuite) TestPromptHistory(c *C) {
	var prompt promptLine
	for _, line := range []string{"one", "two"} {
		for _, r := range line {
			prompt.HandleKey(string(r))
		}
		prompt.HandleKey("ENTER")
	}

	prompt.HandleKey("UP")
	c.Assert(prompt.String(), Equals, "two")
	prompt.HandleKey("UP")
	c.Assert(prompt.String(), Equals, "one")
	prompt.HandleKey("UP")
	c.Assert(prompt.String(), Equals, "one")
	prompt.HandleKey("DOWN")
	c.Assert(prompt.String(), Equals, "two")
	prompt.HandleKey("DOWN")
	c.Assert(prompt.String(), Equals, "")

	prompt.HandleKey("z")
	prompt.HandleKey("KILL")
	c.Assert(prompt.String(), Equals, "")
}
