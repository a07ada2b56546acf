package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/umutterol/hellcrawler-sub001/internal/agent"
	"github.com/umutterol/hellcrawler-sub001/internal/engine"
	"github.com/umutterol/hellcrawler-sub001/internal/infrastructure/storage"
	"github.com/umutterol/hellcrawler-sub001/internal/server"
	"github.com/umutterol/hellcrawler-sub001/internal/version"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var (
		seed       int64
		replayPath string
		tailMs     float64
		defsDir    string
		watchDefs  bool
		savesDir   string
		botEnabled bool
		botScript  string
	)
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.StringVar(&replayPath, "replay", "", "Path to .hcrp replay file to simulate")
	flag.Float64Var(&tailMs, "tail", 0, "Extra milliseconds to simulate after the last replay action")
	flag.StringVar(&defsDir, "defs", "", "Content definitions directory (empty for built-in defaults)")
	flag.BoolVar(&watchDefs, "watch", false, "Hot-reload content definitions on change")
	flag.StringVar(&savesDir, "saves", "", "Directory for profiles and replays")
	flag.BoolVar(&botEnabled, "bot", false, "Run a headless scenario bot")
	flag.StringVar(&botScript, "bot-script", "", "Path to a tengo scenario for the bot")
	flag.Parse()

	logger.Log.Info("Starting Hellcrawler Sim...")
	logger.Log.Info(version.String())

	cfg := engine.NewConfig()
	if defsDir != "" {
		cfg.DefsDir = defsDir
		cfg.WatchDefs = watchDefs
	}
	if savesDir != "" {
		cfg.SaveDir = savesDir
	}

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("💿 Mode: Replay Simulation")

		session, err := storage.ReadReplay(replayPath)
		if err != nil {
			logger.Log.Fatal("Failed to load replay: ", err)
		}

		summary, err := engine.Playback(session, &cfg, tailMs)
		if err != nil {
			logger.Log.Fatal("Playback failed: ", err)
		}

		logger.Log.Info(summary.String())
		return // Выходим после симуляции
	}

	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random Master Seed: %d", cfg.Seed)
	}

	port := os.Getenv("HC_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра с конфигом
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim, err := engine.NewService(&cfg)
	if err != nil {
		logger.Log.Fatal("Failed to init simulation: ", err)
	}
	if err := sim.Start(ctx); err != nil {
		logger.Log.Fatal("Failed to start simulation: ", err)
	}

	// Сценарный бот для прогонов без фронтенда
	if botEnabled {
		var script []byte
		if botScript != "" {
			script, err = os.ReadFile(botScript)
			if err != nil {
				logger.Log.Fatal("Failed to read bot scenario: ", err)
			}
		}
		bot, err := agent.NewBot("bot_1", sim, script)
		if err != nil {
			logger.Log.Fatal("Failed to compile bot scenario: ", err)
		}
		go bot.Run(ctx)
	}

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 3. Запуск сервера
	srv := server.New(sim, port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	// Останавливаем циклы симуляции и сбрасываем ленты реплеев
	cancel()
	sim.Shutdown()

	logger.Log.Info("Done.")
}
