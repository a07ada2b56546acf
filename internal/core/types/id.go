package types

import (
	"fmt"
	"strconv"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
)

// EntityID — 64-битный идентификатор пулируемой сущности.
//
// EntityID является value-type: дешёвое копирование, сравнение и
// сериализация без аллокаций.
//
// Формат битов (от старших к младшим):
//
//	[ Shard (8) | Kind (8) | Generation (16) | Index (32) ]
//
// Где:
//   - Shard — идентификатор инстанса симуляции
//   - Kind — тип сущности (враг, снаряд, танк)
//   - Generation — поколение слота в арене (защита от устаревших ссылок)
//   - Index — индекс слота в арене пула
//
// Generation инкрементируется при каждом возврате слота в пул, поэтому
// ссылка на уже переиспользованную сущность распознаётся как stale.
type EntityID uint64

// NilEntityID — нулевой идентификатор.
// Аналог nil для отсутствующей или неинициализированной ссылки.
const NilEntityID EntityID = 0

// Конфигурация битов EntityID. Всего 64 бита.
const (
	// bitsIndex — бит под индекс слота арены.
	bitsIndex = 32

	// bitsGen — бит под поколение слота.
	bitsGen = 16

	// bitsKind — бит под тип сущности (до 256 типов).
	bitsKind = 8

	// bitsShard — бит под идентификатор инстанса (до 256 инстансов).
	bitsShard = 8

	shiftGen   = bitsIndex
	shiftKind  = bitsIndex + bitsGen
	shiftShard = bitsIndex + bitsGen + bitsKind

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
	maskKind  = (1 << bitsKind) - 1
	maskShard = (1 << bitsShard) - 1
)

// PackEntityID собирает EntityID из составных частей.
//
// Проверок диапазонов нет: арена, единственный легальный источник
// идентификаторов, гарантирует валидность входа.
func PackEntityID(
	shardID uint8,
	kind enums.Kind,
	gen uint16,
	index uint32,
) EntityID {
	return EntityID(
		(uint64(shardID) << shiftShard) |
			(uint64(kind) << shiftKind) |
			(uint64(gen) << shiftGen) |
			uint64(index),
	)
}

// Index возвращает индекс слота в арене.
func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

// Generation возвращает поколение слота.
// Несовпадение поколений означает устаревшую ссылку на переиспользованный слот.
func (id EntityID) Generation() uint16 {
	return uint16((id >> shiftGen) & maskGen)
}

// Kind возвращает тип сущности.
func (id EntityID) Kind() enums.Kind {
	return enums.Kind((id >> shiftKind) & maskKind)
}

// Shard возвращает идентификатор инстанса симуляции.
func (id EntityID) Shard() uint8 {
	return uint8((id >> shiftShard) & maskShard)
}

// IsNil проверяет, является ли идентификатор нулевым.
func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String возвращает человекочитаемое представление для логов и дебага.
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}

	return fmt.Sprintf(
		"[shard=%d kind=%s gen=%d idx=%d]",
		id.Shard(),
		id.Kind(),
		id.Generation(),
		id.Index(),
	)
}

// MarshalJSON сериализует EntityID в JSON как строку.
// uint64 не влезает в точность JS-числа, поэтому только строка.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает как строковое, так и числовое представление.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" {
		*id = NilEntityID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*id = EntityID(v)
	return nil
}
