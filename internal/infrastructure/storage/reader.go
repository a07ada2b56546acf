package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/umutterol/hellcrawler-sub001/internal/domain"
)

func (s *ReplayStore) Load(path string) (*domain.ReplaySession, error) {
	return ReadReplay(path)
}

// ReadReplay читает и валидирует бинарную запись забега.
func ReadReplay(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic %q", header.Magic)
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}

	session := &domain.ReplaySession{
		Seed:      header.Seed,
		TickRate:  int(header.TickRate),
		Timestamp: header.Timestamp,
		Actions:   make([]domain.ReplayAction, header.ActionCount),
	}

	if header.RunIDLen > 0 {
		buf := make([]byte, header.RunIDLen)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("read run id: %w", err)
		}
		session.RunID = string(buf)
	}

	if header.KeyframeLen > 0 {
		session.Keyframe = make([]byte, header.KeyframeLen)
		if _, err := io.ReadFull(r, session.Keyframe); err != nil {
			return nil, fmt.Errorf("read keyframe: %w", err)
		}
	}

	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("read action %d header: %w", i, err)
		}

		act := domain.ReplayAction{
			AtMs:   ah.AtMs,
			Action: domain.ActionType(ah.ActionType),
		}

		if ah.ClientLen > 0 {
			buf := make([]byte, ah.ClientLen)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("read action %d client: %w", i, err)
			}
			act.ClientID = string(buf)
		}

		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("read action %d payload: %w", i, err)
			}
		} else {
			act.Payload = json.RawMessage{}
		}

		session.Actions[i] = act
	}

	return session, nil
}
