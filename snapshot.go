package isoloot

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack"
)

// AgentView is a read-only copy of an agent for renderers
type AgentView struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Color       string   `json:"color"`
	State       string   `json:"state"`
	Status      string   `json:"status"`
	Inventory   []string `json:"inventory"`
	LastMessage string   `json:"last_message"`
	Queued      int      `json:"queued"`
}

// Snapshot is everything a renderer reads in one frame. Nothing in it aliases
// the GameState it was taken from.
type Snapshot struct {
	Tick     uint64      `json:"tick"`
	Agents   []AgentView `json:"agents"`
	Tiles    TileMap     `json:"tiles"`
	Messages []LogItem   `json:"messages"`
}

// Agent finds an agent view by case-insensitive name
func (s Snapshot) Agent(name string) (AgentView, bool) {
	key := agentKey(name)
	for _, agent := range s.Agents {
		if agentKey(agent.Name) == key {
			return agent, true
		}
	}
	return AgentView{}, false
}

// packSnapshot encodes to msgpack using the json field names, so a dumped
// snapshot and a streamed one read the same.
func packSnapshot(snap Snapshot) ([]byte, error) {
	var outBuffer bytes.Buffer

	writer := msgpack.NewEncoder(&outBuffer)
	writer.UseJSONTag(true)
	err := writer.Encode(snap)

	return outBuffer.Bytes(), err
}

func unpackSnapshot(inBytes []byte, snap *Snapshot) error {
	reader := msgpack.NewDecoder(bytes.NewReader(inBytes))
	reader.UseJSONTag(true)
	return reader.Decode(snap)
}

// WriteSnapshot writes snap as zstd-compressed msgpack
func WriteSnapshot(w io.Writer, snap Snapshot) error {
	packed, err := packSnapshot(snap)
	if err != nil {
		return fmt.Errorf("pack snapshot: %w", err)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := enc.Write(packed); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadSnapshot reads what WriteSnapshot wrote
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot

	dec, err := zstd.NewReader(r)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	packed, err := io.ReadAll(dec)
	if err != nil {
		return snap, fmt.Errorf("decompress snapshot: %w", err)
	}

	if err := unpackSnapshot(packed, &snap); err != nil {
		return snap, fmt.Errorf("unpack snapshot: %w", err)
	}
	return snap, nil
}

// WriteSnapshotFile writes snap to path, replacing it atomically
func WriteSnapshotFile(path string, snap Snapshot) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	buf := bufio.NewWriter(f)
	if err := WriteSnapshot(buf, snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

// ReadSnapshotFile reads a snapshot written by WriteSnapshotFile
func ReadSnapshotFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()

	return ReadSnapshot(bufio.NewReader(f))
}
