package isoloot

import (
	"fmt"
	"math"
	"math/rand"
)

// AgentState is what an agent is busy with
type AgentState byte

// Agent states
const (
	STATEIDLE AgentState = iota
	STATEMOVING
	STATEEXPLORING
	STATEGATHERING
	STATEBUILDING
)

var agentStateNames = map[AgentState]string{
	STATEIDLE:      "idle",
	STATEMOVING:    "moving",
	STATEEXPLORING: "exploring",
	STATEGATHERING: "gathering",
	STATEBUILDING:  "building",
}

func (s AgentState) String() string {
	if name, ok := agentStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Movement and task tuning
const (
	MoveSpeed        = 3.0  // tiles per second
	ArrivalThreshold = 0.05 // distance at which a walker snaps onto its target
	TaskDuration     = 2.0  // seconds for gather and build
	ExploreRadius    = 2    // max tiles an explore step strays on each axis
)

// Bounds is the tile area an agent may explore
type Bounds struct {
	Width  int `json:""`
	Height int `json:""`
}

// DefaultBounds matches the default 12x12 map
var DefaultBounds = Bounds{Width: 12, Height: 12}

// Intner is the random source used for explore offsets. *rand.Rand satisfies it.
type Intner interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// Agent is one autonomous worker on the map. Actions are queued and run one
// at a time, advanced by Update.
type Agent struct {
	id          int
	name        string
	x, y        float64
	color       string
	state       AgentState
	inventory   []string
	current     Action
	elapsed     float64
	targetX     float64
	targetY     float64
	queue       []Action
	lastMessage string

	bounds Bounds
	rng    Intner
}

// NewAgent creates an idle agent. bounds limits explore destinations; a nil
// rng uses the math/rand global source.
func NewAgent(id int, name string, x, y float64, color string, bounds Bounds, rng Intner) *Agent {
	if rng == nil {
		rng = globalRand{}
	}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		bounds = DefaultBounds
	}

	return &Agent{
		id:        id,
		name:      name,
		x:         x,
		y:         y,
		color:     color,
		state:     STATEIDLE,
		inventory: make([]string, 0),
		queue:     make([]Action, 0),
		targetX:   x,
		targetY:   y,
		bounds:    bounds,
		rng:       rng}
}

// ID returns the agent's registry id
func (a *Agent) ID() int { return a.id }

// Name returns the display name
func (a *Agent) Name() string { return a.name }

// Color returns the display color
func (a *Agent) Color() string { return a.color }

// Position returns the continuous map position
func (a *Agent) Position() (float64, float64) { return a.x, a.y }

// Target returns where a walking agent is headed
func (a *Agent) Target() (float64, float64) { return a.targetX, a.targetY }

// State returns the current state
func (a *Agent) State() AgentState { return a.state }

// CurrentAction returns the running action, or nil
func (a *Agent) CurrentAction() Action { return a.current }

// LastMessage is whatever the agent last said
func (a *Agent) LastMessage() string { return a.lastMessage }

// QueueLen counts queued actions not yet started
func (a *Agent) QueueLen() int { return len(a.queue) }

// Queue returns a copy of the pending actions, head first
func (a *Agent) Queue() []Action {
	queue := make([]Action, len(a.queue))
	copy(queue, a.queue)
	return queue
}

// Inventory returns a copy of the gathered resources in gather order
func (a *Agent) Inventory() []string {
	inventory := make([]string, len(a.inventory))
	copy(inventory, a.inventory)
	return inventory
}

func (a *Agent) enqueue(action Action) {
	a.queue = append(a.queue, action)
}

// EnqueueMove queues a walk to (x, y)
func (a *Agent) EnqueueMove(x, y int) {
	a.enqueue(MoveAction{X: x, Y: y})
}

// EnqueueGather queues a gather of resource
func (a *Agent) EnqueueGather(resource string) {
	a.enqueue(GatherAction{Resource: resource})
}

// EnqueueBuild queues a build of structure
func (a *Agent) EnqueueBuild(structure string) {
	a.enqueue(BuildAction{Structure: structure})
}

// EnqueueSay queues message. The last message is shown right away and set
// again when the action reaches the head of the queue.
func (a *Agent) EnqueueSay(message string) {
	a.lastMessage = message
	a.enqueue(SayAction{Message: message})
}

// EnqueueExplore picks a nearby destination now and queues a walk to it.
func (a *Agent) EnqueueExplore() {
	span := ExploreRadius*2 + 1
	dx := a.rng.Intn(span) - ExploreRadius
	dy := a.rng.Intn(span) - ExploreRadius

	a.enqueue(ExploreAction{
		X: exploreCoord(a.x, dx, a.bounds.Width),
		Y: exploreCoord(a.y, dy, a.bounds.Height)})
}

// Update advances the agent by dt seconds. Exactly one of walking, working
// or picking the next action happens per call.
func (a *Agent) Update(dt float64) {
	switch a.state {
	case STATEMOVING, STATEEXPLORING:
		a.walk(dt)
	case STATEGATHERING, STATEBUILDING:
		if a.current != nil {
			a.work(dt)
		}
	case STATEIDLE:
		if len(a.queue) > 0 {
			a.next()
		}
	}
}

func (a *Agent) walk(dt float64) {
	dx := a.targetX - a.x
	dy := a.targetY - a.y
	dist := math.Sqrt(dx*dx + dy*dy)

	if dist < ArrivalThreshold {
		a.x, a.y = a.targetX, a.targetY
		a.finish()
		return
	}

	step := math.Min(MoveSpeed*dt, dist)
	a.x += dx / dist * step
	a.y += dy / dist * step
}

func (a *Agent) work(dt float64) {
	a.elapsed += dt
	if a.elapsed < TaskDuration {
		return
	}

	if gather, ok := a.current.(GatherAction); ok {
		a.inventory = append(a.inventory, gather.Resource)
	}
	a.finish()
}

func (a *Agent) finish() {
	a.state = STATEIDLE
	a.current = nil
	a.elapsed = 0
}

func (a *Agent) next() {
	action := a.queue[0]
	a.queue[0] = nil
	a.queue = a.queue[1:]
	a.current = action
	a.elapsed = 0

	switch act := action.(type) {
	case MoveAction:
		a.targetX, a.targetY = float64(act.X), float64(act.Y)
		a.state = STATEMOVING
	case ExploreAction:
		a.targetX, a.targetY = float64(act.X), float64(act.Y)
		a.state = STATEEXPLORING
	case GatherAction:
		a.state = STATEGATHERING
	case BuildAction:
		a.state = STATEBUILDING
	case SayAction:
		a.lastMessage = act.Message
		a.finish()
	default:
		a.current = nil
	}
}

// Status describes what the agent is doing, for status panels
func (a *Agent) Status() string {
	switch a.state {
	case STATEIDLE:
		return fmt.Sprintf("%s is idle at (%d, %d)", a.name, roundHalfUp(a.x), roundHalfUp(a.y))
	case STATEMOVING:
		return fmt.Sprintf("%s is moving to (%v, %v)", a.name, a.targetX, a.targetY)
	case STATEGATHERING:
		if gather, ok := a.current.(GatherAction); ok {
			return fmt.Sprintf("%s is gathering %s", a.name, gather.Resource)
		}
		return fmt.Sprintf("%s is gathering resources", a.name)
	case STATEBUILDING:
		if build, ok := a.current.(BuildAction); ok {
			return fmt.Sprintf("%s is building %s", a.name, build.Structure)
		}
		return fmt.Sprintf("%s is building something", a.name)
	case STATEEXPLORING:
		return fmt.Sprintf("%s is exploring", a.name)
	}
	return fmt.Sprintf("%s: %v", a.name, a.state)
}

// View copies the agent's observable fields
func (a *Agent) View() AgentView {
	return AgentView{
		ID:          a.id,
		Name:        a.name,
		X:           a.x,
		Y:           a.y,
		Color:       a.color,
		State:       a.state.String(),
		Status:      a.Status(),
		Inventory:   a.Inventory(),
		LastMessage: a.lastMessage,
		Queued:      len(a.queue)}
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// exploreCoord rounds p, adds offset and clamps to [0, size-1]. The clamp
// happens before the int conversion so far off-map positions still land on
// the nearest edge.
func exploreCoord(p float64, offset, size int) int {
	v := math.Floor(p+0.5) + float64(offset)
	if math.IsNaN(v) {
		v = 0
	}
	return int(math.Max(0, math.Min(float64(size-1), v)))
}
