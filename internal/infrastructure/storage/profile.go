package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/umutterol/hellcrawler-sub001/internal/models"
)

// ProfileStore хранит JSON-профили в своем каталоге. Имена файлов
// обрезаются до базового: клиентский путь не должен уметь выходить
// за пределы каталога сохранений.
type ProfileStore struct {
	baseDir string
}

func NewProfileStore(dir string) *ProfileStore {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0o755)
	}
	return &ProfileStore{baseDir: dir}
}

// Path - абсолютный путь файла профиля по клиентскому имени.
func (ps *ProfileStore) Path(name string) string {
	return filepath.Join(ps.baseDir, filepath.Base(name))
}

// Save пишет профиль атомарно: во временный файл, затем rename.
// Обрыв посреди записи не оставляет битого сейва.
func (ps *ProfileStore) Save(name string, p *models.Profile) error {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	path := ps.Path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (ps *ProfileStore) Load(name string) (*models.Profile, error) {
	raw, err := os.ReadFile(ps.Path(name))
	if err != nil {
		return nil, err
	}

	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}
