package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/umutterol/hellcrawler-sub001/internal/domain"
)

const (
	MagicHeader string = `HCRP` // 4 байта
	Version1    uint32 = 1
)

// ReplayFileHeader - точное представление заголовка файла в памяти.
// binary.Write пишет его целиком: внутри только числа и массивы,
// никаких слайсов и строк. Переменные части (run id, кадр профиля,
// лента действий) идут следом, их длины лежат в заголовке.
type ReplayFileHeader struct {
	Magic       [4]byte
	Version     uint32
	Seed        int64
	Timestamp   int64
	TickRate    uint16
	RunIDLen    uint8
	_           uint8 // выравнивание формата, всегда 0
	KeyframeLen uint32
	ActionCount uint32
}

// ActionHeader - заголовок каждой записи действия.
type ActionHeader struct {
	AtMs       float64 // 8, время симуляции
	ActionType uint8   // 1
	ClientLen  uint8   // 1
	PayloadLen uint16  // 2
}

// ReplayStore складывает записи забегов в свой каталог.
type ReplayStore struct {
	SaveDir string
}

func NewReplayStore(dir string) *ReplayStore {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0o755)
	}
	return &ReplayStore{SaveDir: dir}
}

// Save пишет сессию в файл с самоописывающим именем и возвращает путь.
func (s *ReplayStore) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%s_%d.hcrp", session.RunID, session.Timestamp)
	path := filepath.Join(s.SaveDir, filename)
	if err := WriteReplay(path, session); err != nil {
		return "", err
	}
	return path, nil
}

// WriteReplay сериализует сессию в бинарный файл по явному пути.
func WriteReplay(path string, session *domain.ReplaySession) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeBinary(f, session)
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	runID := []byte(s.RunID)
	if len(runID) > 255 {
		return fmt.Errorf("run id too long: %d", len(runID))
	}

	header := ReplayFileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		TickRate:    uint16(s.TickRate),
		RunIDLen:    uint8(len(runID)),
		KeyframeLen: uint32(len(s.Keyframe)),
		ActionCount: uint32(len(s.Actions)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(runID); err != nil {
		return err
	}
	if len(s.Keyframe) > 0 {
		if _, err := w.Write(s.Keyframe); err != nil {
			return err
		}
	}

	for _, act := range s.Actions {
		clientBytes := []byte(act.ClientID)
		if len(clientBytes) > 255 {
			return fmt.Errorf("client id too long: %d", len(clientBytes))
		}
		if len(act.Payload) > 65535 {
			return fmt.Errorf("payload too long: %d", len(act.Payload))
		}

		actHeader := ActionHeader{
			AtMs:       act.AtMs,
			ActionType: uint8(act.Action),
			ClientLen:  uint8(len(clientBytes)),
			PayloadLen: uint16(len(act.Payload)),
		}
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}
		if _, err := w.Write(clientBytes); err != nil {
			return err
		}
		if len(act.Payload) > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
