package systems

import (
	"os"
	"testing"

	"github.com/umutterol/hellcrawler-sub001/pkg/logger"
)

func TestMain(m *testing.M) {
	// Глобальный логгер нужен боевым функциям, но шум в тестах не нужен.
	logger.InitSilent()

	os.Exit(m.Run())
}
