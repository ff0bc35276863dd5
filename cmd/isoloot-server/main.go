package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jasonbot/isoloot"
)

var configFile = "./config.yaml"

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

	log.Fatal(isoloot.ServeSSH(game, config.SSHListen, config.HostKeyFile))
}
