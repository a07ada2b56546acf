package defs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// Имена файлов каталога определений.
const (
	FileEnemies     = "enemies.yaml"
	FileWeapons     = "weapons.yaml"
	FileRarity      = "rarity.yaml"
	FileProgression = "progression.yaml"
)

// LoadSpec читает и парсит один YAML-файл в произвольную структуру.
func LoadSpec[T any](path string) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("defs: read %s: %w", path, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("defs: unmarshal %s: %w", path, err)
	}
	return spec, nil
}

// loadSection парсит файл секции, а при его отсутствии возвращает
// встроенный дефолт. Ошибка парсинга существующего файла фатальна:
// молча откатываться на дефолт поверх битых данных нельзя.
func loadSection[T any](dir, file string, fallback T) (T, error) {
	path := filepath.Join(dir, file)
	spec, err := LoadSpec[T](path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fallback, nil
		}
		return fallback, err
	}
	return spec, nil
}

// LoadLibrary собирает библиотеку из каталога определений.
// Пустой путь означает "только встроенные таблицы". Отсутствующие
// файлы добиваются дефолтами посекционно.
func LoadLibrary(dir string) (*Library, error) {
	if dir == "" {
		return DefaultLibrary(), nil
	}

	enemies, err := loadSection(dir, FileEnemies, defaultEnemies())
	if err != nil {
		return nil, err
	}
	weapons, err := loadSection(dir, FileWeapons, defaultWeapons())
	if err != nil {
		return nil, err
	}
	rarities, err := loadSection(dir, FileRarity, defaultRarities())
	if err != nil {
		return nil, err
	}
	prog, err := loadSection(dir, FileProgression, defaultProgression())
	if err != nil {
		return nil, err
	}

	lib, err := buildLibrary(enemies, weapons, rarities, prog)
	if err != nil {
		return nil, fmt.Errorf("defs: %s: %w", dir, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "defs",
		"dir":       dir,
		"enemies":   len(lib.Enemies),
		"weapons":   len(lib.Weapons),
	}).Info("Definitions loaded.")

	return lib, nil
}
