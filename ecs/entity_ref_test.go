package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/planets/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRefBasicLifecycle(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1.0, Y: 2.0})
	ref := storage.CreateEntityRef(id)

	require.NotNil(t, ref)
	assert.Equal(t, id, ref.Id)
	assert.NotNil(t, ref.Archetype)

	resolved, ok := storage.ResolveEntityRef(ref)
	assert.True(t, ok)
	assert.Equal(t, id, resolved)

	assert.True(t, storage.InvalidateEntityRef(ref))
	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok)
	assert.False(t, storage.InvalidateEntityRef(ref))
}

func TestEntityRefIdempotency(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 5.0, Y: 10.0})
	assert.Same(t, storage.CreateEntityRef(id), storage.CreateEntityRef(id))
}

func TestEntityRefForAbsentEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Nil(t, storage.CreateEntityRef(ecs.NewEntityId(3, 3)))

	_, ok := storage.ResolveEntityRef(nil)
	assert.False(t, ok)
	assert.False(t, storage.InvalidateEntityRef(nil))
}

func TestEntityRefFollowsArchetypeMoves(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 7})
	ref := storage.CreateEntityRef(id)

	movedId, err := storage.AddComponent(id, Marker{})
	require.NoError(t, err)

	resolved, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, movedId, resolved)

	movedId, err = storage.RemoveComponent(movedId, reflect.TypeFor[Marker]())
	require.NoError(t, err)

	resolved, ok = storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, movedId, resolved)
	assert.Equal(t, 7.0, ecs.ReadComponent[Position](storage, resolved).X)
}

func TestEntityRefInvalidatedOnDespawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{})
	ref := storage.CreateEntityRef(id)

	require.NoError(t, storage.Despawn(id))
	assert.False(t, ref.Valid())

	// A new entity in the same slot must not revive the old reference.
	storage.Spawn(Position{})
	_, ok := storage.ResolveEntityRef(ref)
	assert.False(t, ok)
}

func TestEntityRefWithZeroId(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})

	ref := &ecs.EntityRef{Id: 0, Archetype: storage.GetArchetypeById(id.ArchetypeId())}
	assert.True(t, ref.Valid())

	detached := &ecs.EntityRef{Id: id}
	assert.False(t, detached.Valid())

	var missing *ecs.EntityRef
	assert.False(t, missing.Valid())
}

func TestEntityRefSurvivesCompaction(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	storage.Spawn(Position{X: 2})
	last := storage.Spawn(Position{X: 3})
	ref := storage.CreateEntityRef(last)

	require.NoError(t, storage.Despawn(first))
	storage.GetArchetypeById(last.ArchetypeId()).Compact()

	resolved, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, 3.0, ecs.ReadComponent[Position](storage, resolved).X)
}
