package isoloot

import "errors"

// Errors reported by the prompt path and by setup. Prompt errors are also
// written to the message log, so callers may ignore them.
var (
	ErrEmptyCommand     = errors.New("empty command")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrAgentNotFound    = errors.New("agent not found")
	ErrBadMapSize       = errors.New("bad map size")
	ErrUnknownGenerator = errors.New("unknown map generator")
	ErrDuplicateAgent   = errors.New("duplicate agent name")
)
