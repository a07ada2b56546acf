package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRunID создает короткий уникальный ID для сессий и файлов реплея.
// Для предметов используется полноценный uuid, здесь хватает 16 hex-символов.
func GenerateRunID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}
