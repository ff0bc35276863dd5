package isoloot

import (
	"log"
	"math/rand"
	"strings"
	"time"
)

// GameState owns the agents, the tile map and the message log, and advances
// them one tick per Update. It is not safe for concurrent use; see Game.
type GameState struct {
	agents   map[string]*Agent
	order    []string
	tiles    TileMap
	messages *MessageLog
	tick     uint64
	nextID   int
	written  uint64

	rng *rand.Rand
	now func() time.Time
}

// NewGameState makes an empty world whose map generation and explore
// offsets draw from a source seeded with seed.
func NewGameState(seed int64) *GameState {
	return &GameState{
		agents:   make(map[string]*Agent),
		order:    make([]string, 0),
		tiles:    TileMap{},
		messages: NewMessageLog(MaxMessages),
		nextID:   1,
		rng:      rand.New(rand.NewSource(seed)),
		now:      time.Now}
}

func agentKey(name string) string {
	return strings.ToLower(name)
}

// Bounds is the explore area for agents added now. Until a map exists this
// is DefaultBounds.
func (gs *GameState) Bounds() Bounds {
	if gs.tiles.Width() == 0 || gs.tiles.Height() == 0 {
		return DefaultBounds
	}
	return Bounds{Width: gs.tiles.Width(), Height: gs.tiles.Height()}
}

// AddAgent registers a new agent under the case-folded name, replacing any
// agent already registered under it.
func (gs *GameState) AddAgent(name string, x, y float64, color string) *Agent {
	agent := NewAgent(gs.nextID, name, x, y, color, gs.Bounds(), gs.rng)
	gs.nextID++

	key := agentKey(name)
	if _, ok := gs.agents[key]; !ok {
		gs.order = append(gs.order, key)
	}
	gs.agents[key] = agent

	return agent
}

// RemoveAgent drops the agent registered under name, if any
func (gs *GameState) RemoveAgent(name string) {
	key := agentKey(name)
	if _, ok := gs.agents[key]; !ok {
		return
	}

	delete(gs.agents, key)
	for i, k := range gs.order {
		if k == key {
			gs.order = append(gs.order[:i], gs.order[i+1:]...)
			break
		}
	}
}

// GetAgent looks an agent up by name, ignoring case
func (gs *GameState) GetAgent(name string) *Agent {
	return gs.agents[agentKey(name)]
}

// Agents lists the registered agents in registration order. The slice is a
// copy; the registry is unaffected by changes to it.
func (gs *GameState) Agents() []*Agent {
	agents := make([]*Agent, 0, len(gs.order))
	for _, key := range gs.order {
		agents = append(agents, gs.agents[key])
	}
	return agents
}

// AgentCount is the number of registered agents
func (gs *GameState) AgentCount() int {
	return len(gs.order)
}

// Update advances the tick counter and every agent by dt seconds
func (gs *GameState) Update(dt float64) {
	gs.tick++
	for _, key := range gs.order {
		gs.agents[key].Update(dt)
	}
}

// Tick is the number of Update calls so far
func (gs *GameState) Tick() uint64 {
	return gs.tick
}

// AddMessage appends a system line to the message log
func (gs *GameState) AddMessage(text string) {
	gs.addMessage(text, MESSAGESYSTEM)
}

func (gs *GameState) addMessage(text string, messageType MessageType) {
	gs.messages.Add(LogItem{Message: text, Timestamp: gs.now(), MessageType: messageType})
	gs.written++
}

// Messages copies the message log, oldest first
func (gs *GameState) Messages() []LogItem {
	return gs.messages.Items()
}

// MessagesWritten counts every line ever added, including evicted ones
func (gs *GameState) MessagesWritten() uint64 {
	return gs.written
}

// MessagesSince copies the lines added after MessagesWritten returned mark,
// limited to those still held.
func (gs *GameState) MessagesSince(mark uint64) []LogItem {
	if mark >= gs.written {
		return []LogItem{}
	}
	return gs.messages.Tail(int(gs.written - mark))
}

// GenerateMap fills a height x width map with independent weighted draws
// and makes it the world map. A negative size is logged, returns nil and
// leaves the current map in place.
func (gs *GameState) GenerateMap(width, height int) TileMap {
	tiles, err := gs.GenerateMapWith(GeneratorUniform, width, height)
	if err != nil {
		log.Printf("Not generating map: %v", err)
	}
	return tiles
}

// GenerateMapWith is GenerateMap using the named generator
func (gs *GameState) GenerateMapWith(generator string, width, height int) (TileMap, error) {
	tiles, err := GenerateTiles(generator, width, height, gs.rng)
	if err != nil {
		return nil, err
	}

	gs.tiles = tiles
	return tiles.Copy(), nil
}

// Tiles copies the world map
func (gs *GameState) Tiles() TileMap {
	return gs.tiles.Copy()
}

// Snapshot copies everything a renderer needs
func (gs *GameState) Snapshot() Snapshot {
	agents := make([]AgentView, 0, len(gs.order))
	for _, key := range gs.order {
		agents = append(agents, gs.agents[key].View())
	}

	return Snapshot{
		Tick:     gs.tick,
		Agents:   agents,
		Tiles:    gs.tiles.Copy(),
		Messages: gs.messages.Items()}
}
