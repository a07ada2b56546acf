package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/umutterol/hellcrawler-sub001/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию симуляции
type DebugHandler struct {
	Service *engine.SimService
}

func NewDebugHandler(s *engine.SimService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pools", h.handlePools)
	mux.HandleFunc("/debug/slots", h.handleSlots)
	mux.HandleFunc("/debug/enemies", h.handleEnemies)
	mux.HandleFunc("/debug/queue", h.handleTimerQueue)
}

// instanceFromQuery достает инстанс по ?instance=N, без параметра -
// инстанс по умолчанию. Чтение состояния идет из HTTP-горутины без
// блокировок: снапшот может отставать на кадр, для дебага сойдет.
func (h *DebugHandler) instanceFromQuery(r *http.Request) *engine.Instance {
	idStr := r.URL.Query().Get("instance")
	if idStr == "" {
		return h.Service.DefaultInstance()
	}

	var id int
	fmt.Sscanf(idStr, "%d", &id)
	return h.Service.Instance(id)
}

// /debug/pools?instance=0 - счетчики пулов арены (активные, свободные, расширения)
func (h *DebugHandler) handlePools(w http.ResponseWriter, r *http.Request) {
	inst := h.instanceFromQuery(r)
	if inst == nil {
		http.Error(w, "Instance not found", http.StatusNotFound)
		return
	}

	writeJSON(w, inst.DebugPools())
}

// /debug/slots?instance=0 - слоты, экипированные модули и уровни прокачки
func (h *DebugHandler) handleSlots(w http.ResponseWriter, r *http.Request) {
	inst := h.instanceFromQuery(r)
	if inst == nil {
		http.Error(w, "Instance not found", http.StatusNotFound)
		return
	}

	writeJSON(w, inst.Snapshot().Slots)
}

// /debug/enemies?instance=0 - дамп активных врагов (включая умирающих)
func (h *DebugHandler) handleEnemies(w http.ResponseWriter, r *http.Request) {
	inst := h.instanceFromQuery(r)
	if inst == nil {
		http.Error(w, "Instance not found", http.StatusNotFound)
		return
	}

	writeJSON(w, inst.Snapshot().Enemies)
}

// /debug/queue?instance=0 - очередь таймеров и состояние волны
func (h *DebugHandler) handleTimerQueue(w http.ResponseWriter, r *http.Request) {
	inst := h.instanceFromQuery(r)
	if inst == nil {
		http.Error(w, "Instance not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]interface{}{
		"timers":         inst.Timers.DebugDump(),
		"wave_active":    inst.Director.WaveActive(),
		"pending_spawns": inst.Director.Pending(),
		"alive_enemies":  inst.Director.Alive(),
	})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug_client.html)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, пустая очередь), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
