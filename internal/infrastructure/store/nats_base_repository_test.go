// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskcal/internal/domain"
)

// testEntity exercises the generic base repository
type testEntity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestNatsBaseRepository_IsReady(t *testing.T) {
	tests := []struct {
		name     string
		kvStore  INatsKeyValue
		expected bool
	}{
		{
			name:     "ready when kvStore is not nil",
			kvStore:  newMockNatsKeyValue(),
			expected: true,
		},
		{
			name:     "not ready when kvStore is nil",
			kvStore:  nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewNatsBaseRepository[testEntity](tt.kvStore, "test")
			assert.Equal(t, tt.expected, repo.IsReady())
		})
	}
}

func TestNatsBaseRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("successful get", func(t *testing.T) {
		mockKV := newMockNatsKeyValue()
		repo := NewNatsBaseRepository[testEntity](mockKV, "test")

		entity := &testEntity{ID: "test-1", Name: "Test Entity"}
		entityJSON, _ := json.Marshal(entity)
		mockKV.data["test-key"] = entityJSON
		mockKV.revisions["test-key"] = 1

		result, err := repo.Get(ctx, "test-key")

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, entity.ID, result.ID)
		assert.Equal(t, entity.Name, result.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mockKV := newMockNatsKeyValue()
		repo := NewNatsBaseRepository[testEntity](mockKV, "test")

		result, err := repo.Get(ctx, "nonexistent")

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
	})

	t.Run("repository not ready", func(t *testing.T) {
		repo := NewNatsBaseRepository[testEntity](nil, "test")

		result, err := repo.Get(ctx, "test-key")

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))
	})

	t.Run("malformed stored value", func(t *testing.T) {
		mockKV := newMockNatsKeyValue()
		repo := NewNatsBaseRepository[testEntity](mockKV, "test")

		mockKV.data["bad-key"] = []byte("not json")
		mockKV.revisions["bad-key"] = 1

		result, err := repo.Get(ctx, "bad-key")

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, domain.ErrorTypeInternal, domain.GetErrorType(err))
	})
}

func TestNatsBaseRepository_GetWithRevision(t *testing.T) {
	ctx := context.Background()
	mockKV := newMockNatsKeyValue()
	repo := NewNatsBaseRepository[testEntity](mockKV, "test")

	entity := &testEntity{ID: "test-1", Name: "Test Entity"}
	entityJSON, _ := json.Marshal(entity)
	mockKV.data["test-key"] = entityJSON
	mockKV.revisions["test-key"] = 5

	result, revision, err := repo.GetWithRevision(ctx, "test-key")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, entity.ID, result.ID)
	assert.Equal(t, uint64(5), revision)
}

func TestNatsBaseRepository_Exists(t *testing.T) {
	ctx := context.Background()
	mockKV := newMockNatsKeyValue()
	repo := NewNatsBaseRepository[testEntity](mockKV, "test")

	entityJSON, _ := json.Marshal(&testEntity{ID: "test-1"})
	mockKV.data["test-key"] = entityJSON
	mockKV.revisions["test-key"] = 1

	exists, err := repo.Exists(ctx, "test-key")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "nonexistent")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNatsBaseRepository_Create(t *testing.T) {
	ctx := context.Background()
	entity := &testEntity{ID: "test-1", Name: "Test Entity"}

	t.Run("successful create", func(t *testing.T) {
		mockKV := newMockNatsKeyValue()
		repo := NewNatsBaseRepository[testEntity](mockKV, "test")

		err := repo.Create(ctx, "test-key", entity)

		require.NoError(t, err)
		assert.Contains(t, mockKV.data, "test-key")
	})

	t.Run("put failure", func(t *testing.T) {
		mockKV := newMockNatsKeyValue()
		mockKV.putError = errors.New("put failed")
		repo := NewNatsBaseRepository[testEntity](mockKV, "test")

		err := repo.Create(ctx, "test-key", entity)

		assert.Error(t, err)
		assert.Equal(t, domain.ErrorTypeInternal, domain.GetErrorType(err))
	})

	t.Run("repository not ready", func(t *testing.T) {
		repo := NewNatsBaseRepository[testEntity](nil, "test")

		err := repo.Create(ctx, "test-key", entity)

		assert.Error(t, err)
		assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))
	})
}

func TestNatsBaseRepository_Update(t *testing.T) {
	ctx := context.Background()
	entity := &testEntity{ID: "test-1", Name: "Updated"}

	t.Run("successful update", func(t *testing.T) {
		mockKV := newMockNatsKeyValue()
		repo := NewNatsBaseRepository[testEntity](mockKV, "test")

		entityJSON, _ := json.Marshal(&testEntity{ID: "test-1", Name: "Original"})
		mockKV.data["test-key"] = entityJSON
		mockKV.revisions["test-key"] = 3

		err := repo.Update(ctx, "test-key", entity, 3)

		require.NoError(t, err)
		assert.Equal(t, uint64(4), mockKV.revisions["test-key"])
	})

	t.Run("revision mismatch is a conflict", func(t *testing.T) {
		mockKV := newMockNatsKeyValue()
		repo := NewNatsBaseRepository[testEntity](mockKV, "test")

		entityJSON, _ := json.Marshal(entity)
		mockKV.data["test-key"] = entityJSON
		mockKV.revisions["test-key"] = 3

		err := repo.Update(ctx, "test-key", entity, 2)

		assert.Error(t, err)
		assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
	})

	t.Run("missing key is not found", func(t *testing.T) {
		mockKV := newMockNatsKeyValue()
		repo := NewNatsBaseRepository[testEntity](mockKV, "test")

		err := repo.Update(ctx, "nonexistent", entity, 1)

		assert.Error(t, err)
		assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
	})
}

func TestNatsBaseRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		mockKV := newMockNatsKeyValue()
		repo := NewNatsBaseRepository[testEntity](mockKV, "test")

		entityJSON, _ := json.Marshal(&testEntity{ID: "test-1"})
		mockKV.data["test-key"] = entityJSON
		mockKV.revisions["test-key"] = 1

		err := repo.Delete(ctx, "test-key", 1)

		require.NoError(t, err)
		assert.NotContains(t, mockKV.data, "test-key")
	})

	t.Run("missing key is not found", func(t *testing.T) {
		mockKV := newMockNatsKeyValue()
		repo := NewNatsBaseRepository[testEntity](mockKV, "test")

		err := repo.Delete(ctx, "nonexistent", 1)

		assert.Error(t, err)
		assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
	})
}

func TestNatsBaseRepository_ListEntities(t *testing.T) {
	ctx := context.Background()

	t.Run("lists all stored entities", func(t *testing.T) {
		mockKV := newMockNatsKeyValue()
		repo := NewNatsBaseRepository[testEntity](mockKV, "test")

		for _, id := range []string{"a", "b", "c"} {
			entityJSON, _ := json.Marshal(&testEntity{ID: id})
			mockKV.data[id] = entityJSON
			mockKV.revisions[id] = 1
		}

		entities, err := repo.ListEntities(ctx)

		require.NoError(t, err)
		assert.Len(t, entities, 3)
	})

	t.Run("skips corrupt entries", func(t *testing.T) {
		mockKV := newMockNatsKeyValue()
		repo := NewNatsBaseRepository[testEntity](mockKV, "test")

		goodJSON, _ := json.Marshal(&testEntity{ID: "good"})
		mockKV.data["good"] = goodJSON
		mockKV.revisions["good"] = 1
		mockKV.data["bad"] = []byte("not json")
		mockKV.revisions["bad"] = 1

		entities, err := repo.ListEntities(ctx)

		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "good", entities[0].ID)
	})

	t.Run("list failure", func(t *testing.T) {
		mockKV := newMockNatsKeyValue()
		mockKV.listError = errors.New("list failed")
		repo := NewNatsBaseRepository[testEntity](mockKV, "test")

		entities, err := repo.ListEntities(ctx)

		assert.Error(t, err)
		assert.Nil(t, entities)
	})
}
