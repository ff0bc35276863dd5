package isoloot

import (
	"context"
	"log"
	"sync"
	"time"
)

// Game serialises access to one GameState for the frame ticker and any
// number of front ends.
type Game struct {
	mu      sync.Mutex
	state   *GameState
	frame   time.Duration
	maxStep float64
}

// NewGameStateFromConfig builds the map, roster and welcome line described
// by config
func NewGameStateFromConfig(config Config) (*GameState, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	state := NewGameState(config.Map.Seed)
	if _, err := state.GenerateMapWith(config.Map.Generator, config.Map.Width, config.Map.Height); err != nil {
		return nil, err
	}

	for _, agent := range config.Agents {
		state.AddAgent(agent.Name, agent.X, agent.Y, agent.Color)
	}

	if config.Welcome != "" {
		state.AddMessage(config.Welcome)
	}

	log.Printf("Generated %dx%d %s map with %d agents", config.Map.Width, config.Map.Height, config.Map.Generator, state.AgentCount())

	return state, nil
}

// NewGame wraps a GameState built from config
func NewGame(config Config) (*Game, error) {
	state, err := NewGameStateFromConfig(config)
	if err != nil {
		return nil, err
	}

	return &Game{
		state:   state,
		frame:   time.Second / time.Duration(config.FrameRateHz),
		maxStep: config.MaxStepSeconds}, nil
}

// Step advances the world by dt seconds, capped at the configured max step
func (g *Game) Step(dt float64) {
	if dt < 0 {
		dt = 0
	}
	if dt > g.maxStep {
		dt = g.maxStep
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.state.Update(dt)
}

// Submit runs one prompt line and returns the log lines it produced
func (g *Game) Submit(text string) ([]LogItem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	mark := g.state.MessagesWritten()
	err := HandlePrompt(g.state, text)
	return g.state.MessagesSince(mark), err
}

// Snapshot copies the current world
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Snapshot()
}

// Tick is the current tick count
func (g *Game) Tick() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Tick()
}

// AgentCount is the number of registered agents
func (g *Game) AgentCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.AgentCount()
}

// Run steps the world once per frame with real elapsed time until ctx ends
func (g *Game) Run(ctx context.Context) {
	ticker := time.NewTicker(g.frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			g.Step(now.Sub(last).Seconds())
			last = now
		}
	}
}
