package isoloot

import (
	"fmt"
	"strings"
)

// UsageHint is logged when a prompt does not parse
const UsageHint = "⚠ Unknown command. Try: AgentName move to X,Y | explore | gather <resource> | build <structure> | say <msg>"

// Targets resolves a command's agent name: every agent for "all", else the
// named agent, else nothing.
func Targets(state *GameState, cmd Command) []*Agent {
	if cmd.IsBroadcast() {
		return state.Agents()
	}

	if agent := state.GetAgent(cmd.AgentName); agent != nil {
		return []*Agent{agent}
	}

	return []*Agent{}
}

// Dispatch queues cmd on its targets and logs one line per agent. It returns
// how many agents were given the action.
func Dispatch(state *GameState, cmd Command) (int, error) {
	targets := Targets(state, cmd)

	if len(targets) == 0 {
		state.addMessage(fmt.Sprintf("⚠ Agent \"%s\" not found.", cmd.AgentName), MESSAGEWARNING)
		return 0, fmt.Errorf("%q: %w", cmd.AgentName, ErrAgentNotFound)
	}

	applied := 0
	for _, agent := range targets {
		if line, ok := apply(agent, cmd); ok {
			state.addMessage(line, MESSAGEACTION)
			applied++
		}
	}

	return applied, nil
}

func apply(agent *Agent, cmd Command) (string, bool) {
	params := cmd.Params

	switch cmd.Action {
	case ACTIONMOVE:
		agent.EnqueueMove(params.X, params.Y)
		return fmt.Sprintf("%s → moving to (%d, %d)", agent.Name(), params.X, params.Y), true
	case ACTIONEXPLORE:
		agent.EnqueueExplore()
		return fmt.Sprintf("%s → exploring", agent.Name()), true
	case ACTIONGATHER:
		agent.EnqueueGather(params.Resource)
		return fmt.Sprintf("%s → gathering %s", agent.Name(), params.Resource), true
	case ACTIONBUILD:
		agent.EnqueueBuild(params.Structure)
		return fmt.Sprintf("%s → building %s", agent.Name(), params.Structure), true
	case ACTIONSAY:
		agent.EnqueueSay(params.Message)
		return fmt.Sprintf("%s says: \"%s\"", agent.Name(), params.Message), true
	}

	return "", false
}

// HandlePrompt echoes text to the message log, parses it and dispatches the
// result. Failures are logged for the player and also returned.
func HandlePrompt(state *GameState, text string) error {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return ErrEmptyCommand
	}

	state.addMessage("> "+text, MESSAGEPROMPT)

	cmd, ok := ParseCommand(text)
	if !ok {
		state.addMessage(UsageHint, MESSAGEWARNING)
		return ErrUnknownCommand
	}

	_, err := Dispatch(state, cmd)
	return err
}
