package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/andlabs/ui"
	"github.com/jasonbot/isoloot"
)

var configFile = "./config.yaml"

func watchGame(game *isoloot.Game, label *ui.Label) {
	for range time.Tick(500 * time.Millisecond) {
		status := fmt.Sprintf("Tick %d, %d agents", game.Tick(), game.AgentCount())
		ui.QueueMain(func() {
			label.SetText(status)
		})
	}
}

func main() {
	log.Println("Starting")
	executable, err := os.Executable()
	if err != nil {
		panic(err)
	}

	if _, err := os.Stat(configFile); err != nil {
		executablePath, err := filepath.Abs(filepath.Dir(executable))
		if err != nil {
			panic(err)
		}

		log.Printf("Going to folder %v...", executablePath)

		os.Chdir(executablePath)
	}

	if err := isoloot.LoadEnv(".env"); err != nil {
		log.Printf("Error loading .env: %v", err)
	}

	config, err := isoloot.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", configFile, err)
	}

	game, err := isoloot.NewGame(config)
	if err != nil {
		log.Fatal(err)
	}

	go game.Run(context.Background())

	stream, err := isoloot.NewWSServer(game, time.Duration(config.SnapshotEveryMs)*time.Millisecond, log.Default())
	if err != nil {
		log.Fatal(err)
	}
	go func() {
		log.Fatal(isoloot.ServeWS(stream, config.WSListen))
	}()
	go func() {
		log.Fatal(isoloot.ServeSSH(game, config.SSHListen, config.HostKeyFile))
	}()

	uierr := ui.Main(func() {
		box := ui.NewVerticalBox()
		box.SetPadded(true)
		box.Append(ui.NewLabel(fmt.Sprintf("Running SSH console on %v", config.SSHListen)), false)
		box.Append(ui.NewLabel(fmt.Sprintf("Streaming snapshots on %v/ws", config.WSListen)), false)
		status := ui.NewLabel("Tick 0")
		box.Append(status, false)
		window := ui.NewWindow("ISO Loot Server", 400, 100, false)
		window.SetChild(box)
		window.OnClosing(func(*ui.Window) bool {
			ui.Quit()
			return true
		})
		window.Show()

		go watchGame(game, status)
	})
	if uierr != nil {
		panic(uierr)
	}
}
