package isoloot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	gossh "golang.org/x/crypto/ssh"
)

const consolePubkey = "ISOLOOT-pubkey"

// renderInterval paces console redraws; the simulation runs faster
const renderInterval = 250 * time.Millisecond

// runOneShot handles `ssh host '<command>'`: submit the command, print what
// it logged and hang up.
func runOneShot(game *Game, s ssh.Session, sessionID string) {
	text := strings.Join(s.Command(), " ")
	lines, err := game.Submit(text)
	log.Printf("[%s] %s ran %q: %v", sessionID, s.User(), text, err)

	for _, line := range lines {
		io.WriteString(s, line.Message+"\n")
	}

	if err != nil {
		s.Exit(1)
		return
	}
	s.Exit(0)
}

func handleConnection(game *Game, s ssh.Session) {
	sessionID := uuid.New().String()
	pubKey, _ := s.Context().Value(consolePubkey).(string)

	log.Printf("[%s] Connected with %v (as %v) key %s", sessionID, s.RemoteAddr(), s.User(), strings.TrimSpace(pubKey))

	if len(s.Command()) > 0 {
		runOneShot(game, s, sessionID)
		return
	}

	screen := NewSSHScreen(s)
	ctx, cancel := context.WithCancel(s.Context())
	defer cancel()

	tick := time.NewTicker(renderInterval)
	defer tick.Stop()

	stringInput := make(chan inputEvent, 1)
	reader := bufio.NewReader(s)
	var prompt promptLine

	go handleKeys(ctx, reader, stringInput, cancel)

	screen.Render(game.Snapshot(), prompt.String())

	for {
		select {
		case event := <-stringInput:
			if event.err != nil {
				log.Printf("[%s] Input closed: %v", sessionID, event.err)
				screen.Reset()
				s.Close()
				return
			}
			if text, ok := prompt.HandleKey(event.inputString); ok {
				if _, err := game.Submit(text); err != nil {
					log.Printf("[%s] %s: %q: %v", sessionID, s.User(), text, err)
				}
			}
			screen.Render(game.Snapshot(), prompt.String())
		case <-tick.C:
			screen.Render(game.Snapshot(), prompt.String())
		case <-ctx.Done():
			log.Printf("[%s] Disconnected %v", sessionID, s.RemoteAddr())
			screen.Reset()
			s.Close()
			return
		}
	}
}

// ServeSSH runs the console server until it fails.
func ServeSSH(game *Game, listen, hostKeyFile string) error {
	publicKeyOption := ssh.PublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
		marshal := gossh.MarshalAuthorizedKey(key)
		ctx.SetValue(consolePubkey, string(marshal))
		return true
	})

	options := []ssh.Option{publicKeyOption}
	if hostKeyFile != "" {
		options = append(options, ssh.HostKeyFile(hostKeyFile))
	}

	log.Printf("Starting SSH server on %v", listen)
	err := ssh.ListenAndServe(listen, func(s ssh.Session) {
		handleConnection(game, s)
	}, options...)

	return fmt.Errorf("ssh server: %w", err)
}
