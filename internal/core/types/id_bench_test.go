package types

import (
	"testing"

	"github.com/umutterol/hellcrawler-sub001/internal/core/types/enums"
)

/*
   Sinks — обязательны.
   Нужны, чтобы компилятор не выкинул вычисления.
*/

var (
	sinkID  EntityID
	sinkU8  uint8
	sinkU16 uint16
	sinkU32 uint32
)

//go:noinline
func packEntityIDNoInline(
	shard uint8,
	kind enums.Kind,
	gen uint16,
	index uint32,
) EntityID {
	return PackEntityID(shard, kind, gen, index)
}

//go:noinline
func entityIDShardNoInline(id EntityID) uint8 {
	return id.Shard()
}

//go:noinline
func entityIDKindNoInline(id EntityID) enums.Kind {
	return id.Kind()
}

//go:noinline
func entityIDGenNoInline(id EntityID) uint16 {
	return id.Generation()
}

//go:noinline
func entityIDIndexNoInline(id EntityID) uint32 {
	return id.Index()
}

// Упаковка и распаковка происходят в каждом кадре на каждый снаряд,
// поэтому следим, чтобы они оставались бесплатными.
func BenchmarkPackEntityID(b *testing.B) {
	var id EntityID
	for i := 0; i < b.N; i++ {
		id = packEntityIDNoInline(
			1,
			enums.KindProjectile,
			uint16(i),
			uint32(i),
		)
	}
	sinkID = id
}

func BenchmarkEntityID_Getters(b *testing.B) {
	id := packEntityIDNoInline(1, enums.KindEnemy, 3, 4)

	b.Run("Shard", func(b *testing.B) {
		var v uint8
		for i := 0; i < b.N; i++ {
			v = entityIDShardNoInline(id)
		}
		sinkU8 = v
	})

	b.Run("Kind", func(b *testing.B) {
		var v enums.Kind
		for i := 0; i < b.N; i++ {
			v = entityIDKindNoInline(id)
		}
		sinkU8 = uint8(v)
	})

	b.Run("Gen", func(b *testing.B) {
		var v uint16
		for i := 0; i < b.N; i++ {
			v = entityIDGenNoInline(id)
		}
		sinkU16 = v
	})

	b.Run("Index", func(b *testing.B) {
		var v uint32
		for i := 0; i < b.N; i++ {
			v = entityIDIndexNoInline(id)
		}
		sinkU32 = v
	})
}
