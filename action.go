package isoloot

// ActionKind names the kind of an Action or Command
type ActionKind byte

// Action kinds understood by agents
const (
	ACTIONNONE ActionKind = iota
	ACTIONMOVE
	ACTIONEXPLORE
	ACTIONGATHER
	ACTIONBUILD
	ACTIONSAY
)

var actionKindNames = map[ActionKind]string{
	ACTIONNONE:    "none",
	ACTIONMOVE:    "move",
	ACTIONEXPLORE: "explore",
	ACTIONGATHER:  "gather",
	ACTIONBUILD:   "build",
	ACTIONSAY:     "say",
}

func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Action is a queued agent task. The set of implementations is closed to
// this package.
type Action interface {
	Kind() ActionKind
	action()
}

// MoveAction walks straight to a tile
type MoveAction struct {
	X int `json:""`
	Y int `json:""`
}

// ExploreAction walks to a destination picked when the action was queued
type ExploreAction struct {
	X int `json:""`
	Y int `json:""`
}

// GatherAction adds Resource to the inventory once its timer runs out
type GatherAction struct {
	Resource string `json:""`
}

// BuildAction occupies the agent for the task duration
type BuildAction struct {
	Structure string `json:""`
}

// SayAction sets the agent's last message
type SayAction struct {
	Message string `json:""`
}

// Kind implements Action
func (MoveAction) Kind() ActionKind { return ACTIONMOVE }

// Kind implements Action
func (ExploreAction) Kind() ActionKind { return ACTIONEXPLORE }

// Kind implements Action
func (GatherAction) Kind() ActionKind { return ACTIONGATHER }

// Kind implements Action
func (BuildAction) Kind() ActionKind { return ACTIONBUILD }

// Kind implements Action
func (SayAction) Kind() ActionKind { return ACTIONSAY }

func (MoveAction) action()    {}
func (ExploreAction) action() {}
func (GatherAction) action()  {}
func (BuildAction) action()   {}
func (SayAction) action()     {}
