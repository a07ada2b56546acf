package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/umutterol/hellcrawler-sub001/internal/domain"
	"github.com/umutterol/hellcrawler-sub001/internal/engine"
	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

// simbench гоняет симуляцию с фиксированным сидом без сети и без сна
// между кадрами. Два применения: замер стоимости кадра и проверка
// детерминизма - одинаковый сид обязан давать одинаковый отчет.

func init() {
	logger.Init()
	// Отчет читается со stdout, лог-шум симуляции по умолчанию глушим.
	if _, ok := os.LookupEnv("LOG_LEVEL"); !ok {
		logger.Log.SetLevel(logrus.WarnLevel)
	}
}

func main() {
	var (
		seed    int64
		simMs   float64
		rate    int
		defsDir string
		runs    int
	)
	flag.Int64Var(&seed, "seed", 1, "Master seed")
	flag.Float64Var(&simMs, "ms", 60000, "Simulated duration, ms")
	flag.IntVar(&rate, "rate", 30, "Tick rate, Hz")
	flag.StringVar(&defsDir, "defs", "", "Content definitions directory (empty for built-in defaults)")
	flag.IntVar(&runs, "runs", 2, "Identical runs; mismatching reports mean broken determinism")
	flag.Parse()

	if rate <= 0 || simMs <= 0 || runs <= 0 {
		fmt.Println("simbench: rate, ms and runs must be positive")
		os.Exit(2)
	}

	cfg := engine.NewConfig()
	cfg.DefsDir = defsDir
	cfg.SaveDir = filepath.Join(os.TempDir(), "hellcrawler-bench")

	// Синтетическая лента: одна команда SPAWN_WAVE на нулевом кадре,
	// дальше волны цепляются сами (AutoWaves). Вся боевая случайность
	// растет из session.Seed.
	session := &domain.ReplaySession{
		RunID:     "bench",
		Seed:      seed,
		TickRate:  rate,
		Timestamp: time.Now().Unix(),
		Actions: []domain.ReplayAction{
			{AtMs: 0, ClientID: "bench", Action: domain.ActionSpawnWave},
		},
	}

	frames := int(simMs / (1000.0 / float64(rate)))
	fmt.Printf("=== simbench: seed=%d rate=%dHz simulated=%.1fs frames=%d runs=%d ===\n",
		seed, rate, simMs/1000.0, frames, runs)

	var first *engine.PlaybackSummary
	for n := 1; n <= runs; n++ {
		start := time.Now()
		summary, err := engine.Playback(session, &cfg, simMs)
		if err != nil {
			fmt.Printf("run %d failed: %v\n", n, err)
			os.Exit(1)
		}
		elapsed := time.Since(start)

		perFrame := time.Duration(0)
		if frames > 0 {
			perFrame = elapsed / time.Duration(frames)
		}
		speedup := (time.Duration(simMs) * time.Millisecond).Seconds() / elapsed.Seconds()

		fmt.Printf("run %d: wall=%v frame_avg=%v speedup=%.0fx\n", n, elapsed.Round(time.Millisecond), perFrame, speedup)
		fmt.Printf("       kills=%d act=%d zone=%d wave=%d tank_lvl=%d hp=%d gold=%d\n",
			summary.Kills, summary.Act, summary.Zone, summary.Wave,
			summary.TankLevel, summary.TankHealth, summary.Gold)

		if first == nil {
			first = summary
			continue
		}
		if !sameOutcome(first, summary) {
			fmt.Println("DETERMINISM FAIL: run outcomes diverged for the same seed")
			os.Exit(1)
		}
	}

	if runs > 1 {
		fmt.Println("determinism: OK")
	}
}

func sameOutcome(a, b *engine.PlaybackSummary) bool {
	return a.Kills == b.Kills &&
		a.TankHealth == b.TankHealth &&
		a.TankLevel == b.TankLevel &&
		a.Gold == b.Gold &&
		a.Act == b.Act &&
		a.Zone == b.Zone &&
		a.Wave == b.Wave
}
