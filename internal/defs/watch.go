package defs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// Watcher следит за каталогом определений и пересобирает библиотеку
// при изменении YAML-файлов. Сам он ничего не подменяет: готовая
// библиотека уходит в канал Reloads, а подменяет ее цикл симуляции,
// чтобы не трогать контент из чужой горутины.
type Watcher struct {
	watcher *fsnotify.Watcher
	dir     string
	log     *logrus.Entry

	Reloads chan *Library
	Errors  chan error

	closeCh chan struct{}
	once    sync.Once
}

// WatchDir запускает наблюдение за каталогом определений.
func WatchDir(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		dir:     dir,
		log:     logger.Log.WithFields(logrus.Fields{"component": "defs", "dir": dir}),
		Reloads: make(chan *Library, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()

	w.log.Info("Definition watcher started.")
	return w, nil
}

// Close останавливает наблюдение. Безопасен к повторным вызовам.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	// Редакторы пишут файл сериями событий, отсекаем дребезг.
	last := make(map[string]time.Time)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isDefFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			w.reload(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.pushError(err)

		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload(changed string) {
	lib, err := LoadLibrary(w.dir)
	if err != nil {
		// Битый файл не роняет текущую библиотеку.
		w.log.WithError(err).WithField("file", changed).Error("Definition reload failed, keeping previous library.")
		w.pushError(err)
		return
	}

	// Если предыдущую перезагрузку еще не забрали, она устарела.
	select {
	case <-w.Reloads:
	default:
	}
	w.Reloads <- lib

	w.log.WithField("file", changed).Info("Definitions reloaded.")
}

func (w *Watcher) pushError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

func isDefFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
