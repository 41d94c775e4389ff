package ecs_test

import (
	"testing"

	"github.com/plus3/planets/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovingView struct {
	Position *Position
	Velocity *Velocity
}

func TestViewIterMutatesStorage(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[MovingView](storage)

	id := storage.Spawn(Position{X: 1, Y: 1}, Velocity{DX: 2, DY: 3})
	storage.Spawn(Position{X: 10}) // no velocity, not matched

	count := 0
	for _, item := range view.Iter() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
		count++
	}

	assert.Equal(t, 1, count)
	pos := ecs.ReadComponent[Position](storage, id)
	assert.Equal(t, 3.0, pos.X)
	assert.Equal(t, 4.0, pos.Y)
}

func TestViewOptionalFields(t *testing.T) {
	type OptionalView struct {
		Position *Position
		Label    *Label `ecs:"optional"`
	}

	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[OptionalView](storage)

	named := storage.Spawn(Position{X: 1}, Label{Value: "Earth"})
	anonymous := storage.Spawn(Position{X: 2})

	seen := map[ecs.EntityId]*Label{}
	for id, item := range view.Iter() {
		seen[id] = item.Label
	}

	require.Len(t, seen, 2)
	require.NotNil(t, seen[named])
	assert.Equal(t, "Earth", seen[named].Value)
	assert.Nil(t, seen[anonymous])
}

func TestViewEntityIdField(t *testing.T) {
	type IdentifiedView struct {
		Id       ecs.EntityId
		Position *Position
	}

	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[IdentifiedView](storage)

	id := storage.Spawn(Position{X: 5})
	for iterId, item := range view.Iter() {
		assert.Equal(t, iterId, item.Id)
		assert.Equal(t, id, item.Id)
	}

	got := view.Get(id)
	require.NotNil(t, got)
	assert.Equal(t, id, got.Id)
}

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[MovingView](storage)

	full := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	partial := storage.Spawn(Position{X: 2})

	assert.NotNil(t, view.Get(full))
	assert.Nil(t, view.Get(partial))

	require.NoError(t, storage.Despawn(full))
	assert.Nil(t, view.Get(full))
}

func TestViewGetRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[MovingView](storage)

	id := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	ref := storage.CreateEntityRef(id)

	_, err := storage.AddComponent(id, Marker{})
	require.NoError(t, err)

	item := view.GetRef(ref)
	require.NotNil(t, item)
	assert.Equal(t, 1.0, item.Position.X)

	assert.Nil(t, view.GetRef(nil))
}

func TestViewIterationOrderIsStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[struct{ Position *Position }](storage)

	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			storage.Spawn(Position{X: float64(i)}, Marker{})
		} else {
			storage.Spawn(Position{X: float64(i)})
		}
	}

	collect := func() []float64 {
		var xs []float64
		for item := range view.Values() {
			xs = append(xs, item.Position.X)
		}
		return xs
	}

	first := collect()
	assert.Len(t, first, 20)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, collect())
	}
}

func TestViewSpawn(t *testing.T) {
	type SpawnView struct {
		Position *Position
		Label    *Label `ecs:"optional"`
	}

	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[SpawnView](storage)

	id := view.Spawn(SpawnView{Position: &Position{X: 9}})
	assert.Equal(t, 9.0, ecs.ReadComponent[Position](storage, id).X)
	assert.Nil(t, ecs.ReadComponent[Label](storage, id))

	assert.Panics(t, func() { view.Spawn(SpawnView{}) })
}

func TestViewRejectsInvalidShapes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ Position Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			A *Position
			B *Position
		}](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"sometimes"`
		}](storage)
	})
}
