package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"github.com/jasonbot/isoloot"
)

func main() {
	configPath := flag.String("config", "./config.yaml", "world config")
	scriptPath := flag.String("script", "-", "command script, - for stdin")
	outPath := flag.String("out", "snapshot.zst", "where to write the final snapshot")
	dumpPath := flag.String("dump", "", "print an existing snapshot file as JSON and exit")
	step := flag.Float64("step", isoloot.DefaultScriptOptions.Step, "seconds per tick")
	gap := flag.Float64("gap", isoloot.DefaultScriptOptions.Gap, "seconds simulated after each command")
	settle := flag.Float64("settle", isoloot.DefaultScriptOptions.Settle, "seconds simulated after the script")
	flag.Parse()

	if *dumpPath != "" {
		snap, err := isoloot.ReadSnapshotFile(*dumpPath)
		if err != nil {
			log.Fatal(err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			log.Fatal(err)
		}
		return
	}

	config, err := isoloot.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", *configPath, err)
	}

	state, err := isoloot.NewGameStateFromConfig(config)
	if err != nil {
		log.Fatal(err)
	}

	var script io.Reader = os.Stdin
	if *scriptPath != "-" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		script = f
	}

	options := isoloot.ScriptOptions{Step: *step, Gap: *gap, Settle: *settle}
	if err := isoloot.RunScript(state, script, options); err != nil {
		log.Fatal(err)
	}

	snap := state.Snapshot()
	if err := isoloot.WriteSnapshotFile(*outPath, snap); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote tick %d with %d agents to %s", snap.Tick, len(snap.Agents), *outPath)
}
