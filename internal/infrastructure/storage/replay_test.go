package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/umutterol/hellcrawler-sub001/internal/domain"
)

func testSession() *domain.ReplaySession {
	return &domain.ReplaySession{
		RunID:     "a1b2c3d4e5f60708",
		Seed:      -9_000_000_001, // отрицательные сиды тоже живут в int64
		TickRate:  30,
		Timestamp: 1765000000,
		Keyframe:  []byte{0x82, 0xa4, 0x74, 0x61, 0x6e, 0x6b, 0xc0, 0x00},
		Actions: []domain.ReplayAction{
			// Команда без пейлоада - обычное дело для SPAWN_WAVE.
			{AtMs: 0, ClientID: "cli_1", Action: domain.ActionSpawnWave},
			{AtMs: 333.33333333333337, ClientID: "cli_1", Action: domain.ActionEquip,
				Payload: json.RawMessage(`{"slot_index":1,"item_id":"x"}`)},
			{AtMs: 5432.1, ClientID: "bot", Action: domain.ActionCheat,
				Payload: json.RawMessage(`{"gold":100}`)},
		},
	}
}

func TestReplayRoundTrip(t *testing.T) {
	store := NewReplayStore(t.TempDir())
	session := testSession()

	path, err := store.Save(session)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Ext(path) != ".hcrp" {
		t.Errorf("path = %q, want .hcrp extension", path)
	}
	if !strings.Contains(filepath.Base(path), session.RunID) {
		t.Errorf("filename %q must embed the run id", filepath.Base(path))
	}

	got, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.RunID != session.RunID {
		t.Errorf("RunID = %q, want %q", got.RunID, session.RunID)
	}
	if got.Seed != session.Seed {
		t.Errorf("Seed = %d, want %d", got.Seed, session.Seed)
	}
	if got.TickRate != session.TickRate {
		t.Errorf("TickRate = %d, want %d", got.TickRate, session.TickRate)
	}
	if got.Timestamp != session.Timestamp {
		t.Errorf("Timestamp = %d, want %d", got.Timestamp, session.Timestamp)
	}
	if !bytes.Equal(got.Keyframe, session.Keyframe) {
		t.Errorf("Keyframe = % x, want % x", got.Keyframe, session.Keyframe)
	}

	if len(got.Actions) != len(session.Actions) {
		t.Fatalf("Actions = %d, want %d", len(got.Actions), len(session.Actions))
	}
	for i, want := range session.Actions {
		act := got.Actions[i]
		// AtMs - битовая точность: от нее зависят границы кадров
		// при воспроизведении.
		if act.AtMs != want.AtMs {
			t.Errorf("action %d AtMs = %v, want %v", i, act.AtMs, want.AtMs)
		}
		if act.Action != want.Action {
			t.Errorf("action %d Action = %v, want %v", i, act.Action, want.Action)
		}
		if act.ClientID != want.ClientID {
			t.Errorf("action %d ClientID = %q, want %q", i, act.ClientID, want.ClientID)
		}
		if string(act.Payload) != string(want.Payload) {
			t.Errorf("action %d Payload = %s, want %s", i, act.Payload, want.Payload)
		}
	}
}

func TestReadReplay_RejectsForeignMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.hcrp")

	junk := make([]byte, 64)
	copy(junk, "JUNK")
	if err := os.WriteFile(path, junk, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := ReadReplay(path); err == nil {
		t.Fatal("file with a foreign signature must be rejected")
	}
}

func TestReadReplay_RejectsUnknownVersion(t *testing.T) {
	store := NewReplayStore(t.TempDir())
	path, err := store.Save(testSession())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	// Младший байт версии лежит сразу за четырехбайтовой сигнатурой.
	data[4] = 0xFF
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := ReadReplay(path); err == nil {
		t.Fatal("unknown format version must be rejected")
	}
}

func TestReadReplay_TruncatedTape(t *testing.T) {
	store := NewReplayStore(t.TempDir())
	path, err := store.Save(testSession())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)-5], 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// Оборванная лента - ошибка чтения, а не паника и не тихий обрезок.
	if _, err := ReadReplay(path); err == nil {
		t.Fatal("truncated tape must surface a read error")
	}
}
