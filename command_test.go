package isoloot

import (
	. "gopkg.in/check.v1"
)

type CommandSuite struct{}

var _ = Suite(&CommandSuite{})

func (s *CommandSuite) parse(c *C, text string) Command {
	cmd, ok := ParseCommand(text)
	c.Assert(ok, Equals, true, Commentf("%q did not parse", text))
	return cmd
}

func (s *CommandSuite) TestMove(c *C) {
	c.Assert(s.parse(c, "Atlas move to 5,3"), DeepEquals,
		Command{AgentName: "Atlas", Action: ACTIONMOVE, Params: CommandParams{X: 5, Y: 3}})
}

func (s *CommandSuite) TestMoveSeparators(c *C) {
	for _, text := range []string{
		"Nova move to 10 , 7",
		"Nova move to 10,7",
		"Nova move to 10 7",
		"Nova   move   to   10,   7",
		"  Nova move to 10\t7  ",
	} {
		cmd := s.parse(c, text)
		c.Assert(cmd.Action, Equals, ACTIONMOVE)
		c.Assert(cmd.Params, DeepEquals, CommandParams{X: 10, Y: 7}, Commentf("%q", text))
	}
}

func (s *CommandSuite) TestMoveNeedsTwoIntegers(c *C) {
	for _, text := range []string{
		"Atlas move to 5",
		"Atlas move to -1,3",
		"Atlas move to 1.5,3",
		"Atlas move to a,b",
		"Atlas move 5,3",
		"Atlas move to 99999999999999999999999,1",
	} {
		_, ok := ParseCommand(text)
		c.Assert(ok, Equals, false, Commentf("%q", text))
	}
}

func (s *CommandSuite) TestExplore(c *C) {
	c.Assert(s.parse(c, "Echo explore"), DeepEquals, Command{AgentName: "Echo", Action: ACTIONEXPLORE})

	_, ok := ParseCommand("Echo explore north")
	c.Assert(ok, Equals, false)
}

func (s *CommandSuite) TestGatherLowerCasesResource(c *C) {
	c.Assert(s.parse(c, "Atlas gather wood"), DeepEquals,
		Command{AgentName: "Atlas", Action: ACTIONGATHER, Params: CommandParams{Resource: "wood"}})
	c.Assert(s.parse(c, "Atlas gather  Oak Wood ").Params.Resource, Equals, "oak wood")
}

func (s *CommandSuite) TestBuild(c *C) {
	c.Assert(s.parse(c, "Nova build House"), DeepEquals,
		Command{AgentName: "Nova", Action: ACTIONBUILD, Params: CommandParams{Structure: "house"}})
}

func (s *CommandSuite) TestSayKeepsCase(c *C) {
	c.Assert(s.parse(c, "Echo say Hello World"), DeepEquals,
		Command{AgentName: "Echo", Action: ACTIONSAY, Params: CommandParams{Message: "Hello World"}})
}

func (s *CommandSuite) TestBroadcastTarget(c *C) {
	cmd := s.parse(c, "all explore")
	c.Assert(cmd.AgentName, Equals, "all")
	c.Assert(cmd.IsBroadcast(), Equals, true)
	c.Assert(s.parse(c, "ALL explore").IsBroadcast(), Equals, true)
	c.Assert(s.parse(c, "Atlas explore").IsBroadcast(), Equals, false)
}

func (s *CommandSuite) TestVerbsIgnoreCaseNamesDoNot(c *C) {
	cmd := s.parse(c, "ATLAS MOVE TO 1,2")
	c.Assert(cmd.Action, Equals, ACTIONMOVE)
	c.Assert(cmd.AgentName, Equals, "ATLAS")
	c.Assert(cmd.Params, DeepEquals, CommandParams{X: 1, Y: 2})

	c.Assert(s.parse(c, "nova GaThEr Stone").Params.Resource, Equals, "stone")
}

func (s *CommandSuite) TestNoMatch(c *C) {
	for _, text := range []string{"", "   ", "\t\n", "gibberish", "Atlas dance", "Atlas gather", "Atlas say"} {
		cmd, ok := ParseCommand(text)
		c.Assert(ok, Equals, false, Commentf("%q", text))
		c.Assert(cmd, DeepEquals, Command{})
	}
}

func (s *CommandSuite) TestString(c *C) {
	for _, text := range []string{
		"Atlas move to 5,3",
		"Echo explore",
		"Atlas gather wood",
		"Nova build house",
		"Echo say Hi there",
	} {
		c.Assert(s.parse(c, text).String(), Equals, text)
	}
}

func (s *CommandSuite) TestUnicodeSpaces(c *C) {
	cmd := s.parse(c, "Atlas move to 3\u00a04")
	c.Assert(cmd.Params, DeepEquals, CommandParams{X: 3, Y: 4})

	cmd = s.parse(c, "Atlas\u00a0gather\u2003Wood")
	c.Assert(cmd.AgentName, Equals, "Atlas")
	c.Assert(cmd.Params.Resource, Equals, "wood")

	c.Assert(s.parse(c, "\u00a0Echo explore\u00a0").AgentName, Equals, "Echo")
}
