package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/planets/ecs"
)

var markerType = reflect.TypeFor[Marker]()

func populate(storage *ecs.Storage, n int) {
	for i := 0; i < n; i++ {
		switch i % 3 {
		case 0:
			storage.Spawn(Position{X: float64(i)}, Velocity{DX: 1})
		case 1:
			storage.Spawn(Position{X: float64(i)}, Velocity{DX: 1}, Weight{Value: 1})
		default:
			storage.Spawn(Position{X: float64(i)})
		}
	}
}

func BenchmarkSpawn(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(Position{X: float64(i)}, Velocity{})
	}
}

func BenchmarkSpawnDespawn(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := storage.Spawn(Position{}, Velocity{})
		_ = storage.Despawn(id)
	}
}

func BenchmarkViewIter(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	populate(storage, 10000)
	view := ecs.NewView[MovingView](storage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for item := range view.Values() {
			item.Position.X += item.Velocity.DX
		}
	}
}

func BenchmarkQueryExecute(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	populate(storage, 10000)
	query := ecs.NewQuery[MovingView](storage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		query.Execute()
		for item := range query.Values() {
			item.Position.X += item.Velocity.DX
		}
	}
}

func BenchmarkAddRemoveComponent(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{}, Velocity{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id, _ = storage.AddComponent(id, Marker{})
		id, _ = storage.RemoveComponent(id, markerType)
	}
}
