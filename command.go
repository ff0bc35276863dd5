package isoloot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// BroadcastTarget is the agent name that addresses every agent
const BroadcastTarget = "all"

// CommandParams holds the arguments of a command; only the fields for its
// action are set.
type CommandParams struct {
	X         int    `json:",omitempty"`
	Y         int    `json:",omitempty"`
	Resource  string `json:",omitempty"`
	Structure string `json:",omitempty"`
	Message   string `json:",omitempty"`
}

// Command is one parsed prompt line
type Command struct {
	AgentName string        `json:""`
	Action    ActionKind    `json:""`
	Params    CommandParams `json:""`
}

// IsBroadcast reports whether the command targets every agent
func (c Command) IsBroadcast() bool {
	return strings.EqualFold(c.AgentName, BroadcastTarget)
}

func (c Command) String() string {
	switch c.Action {
	case ACTIONMOVE:
		return fmt.Sprintf("%s move to %d,%d", c.AgentName, c.Params.X, c.Params.Y)
	case ACTIONEXPLORE:
		return fmt.Sprintf("%s explore", c.AgentName)
	case ACTIONGATHER:
		return fmt.Sprintf("%s gather %s", c.AgentName, c.Params.Resource)
	case ACTIONBUILD:
		return fmt.Sprintf("%s build %s", c.AgentName, c.Params.Structure)
	case ACTIONSAY:
		return fmt.Sprintf("%s say %s", c.AgentName, c.Params.Message)
	}
	return c.AgentName
}

// grammarPattern compiles a case-insensitive rule in which \s and \S also
// cover Unicode spaces such as NBSP, matching what strings.TrimSpace strips.
func grammarPattern(pattern string) *regexp.Regexp {
	pattern = strings.NewReplacer(
		`[,\s]`, `[,\s\p{Z}]`,
		`\s`, `[\s\p{Z}]`,
		`\S`, `[^\s\p{Z}]`,
	).Replace(pattern)
	return regexp.MustCompile(`(?i)` + pattern)
}

type grammarRule struct {
	pattern *regexp.Regexp
	build   func(m []string) (Command, bool)
}

// Rules are tried in order; the first full-line match wins.
var grammar = []grammarRule{
	{
		pattern: grammarPattern(`^(\S+)\s+move\s+to\s+(\d+)\s*[,\s]\s*(\d+)$`),
		build: func(m []string) (Command, bool) {
			x, err := strconv.Atoi(m[2])
			if err != nil {
				return Command{}, false
			}
			y, err := strconv.Atoi(m[3])
			if err != nil {
				return Command{}, false
			}
			return Command{AgentName: m[1], Action: ACTIONMOVE, Params: CommandParams{X: x, Y: y}}, true
		},
	},
	{
		pattern: grammarPattern(`^(\S+)\s+explore$`),
		build: func(m []string) (Command, bool) {
			return Command{AgentName: m[1], Action: ACTIONEXPLORE}, true
		},
	},
	{
		pattern: grammarPattern(`^(\S+)\s+gather\s+(.+)$`),
		build: func(m []string) (Command, bool) {
			resource := strings.ToLower(strings.TrimSpace(m[2]))
			return Command{AgentName: m[1], Action: ACTIONGATHER, Params: CommandParams{Resource: resource}}, true
		},
	},
	{
		pattern: grammarPattern(`^(\S+)\s+build\s+(.+)$`),
		build: func(m []string) (Command, bool) {
			structure := strings.ToLower(strings.TrimSpace(m[2]))
			return Command{AgentName: m[1], Action: ACTIONBUILD, Params: CommandParams{Structure: structure}}, true
		},
	},
	{
		pattern: grammarPattern(`^(\S+)\s+say\s+(.+)$`),
		build: func(m []string) (Command, bool) {
			return Command{AgentName: m[1], Action: ACTIONSAY, Params: CommandParams{Message: m[2]}}, true
		},
	},
}

// ParseCommand turns a prompt line into a Command. The bool is false when no
// grammar rule matches the whole trimmed line.
func ParseCommand(text string) (Command, bool) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return Command{}, false
	}

	for _, rule := range grammar {
		m := rule.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return rule.build(m)
	}

	return Command{}, false
}
