package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/Abdu-Alim/Death-by-AI/internal/models"
)

func TestPlayerActionRepository_Create(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewPlayerActionRepository(db)
	ctx := context.Background()

	player := CreateTestPlayer(t, db, "alex")
	situation := CreateTestSituation(t, db, models.CategoryNature, "lost in a cave")
	session := CreateTestSession(t, db, player.ID, situation.ID)

	action := &models.PlayerAction{
		GameSessionID: session.ID,
		RoundID:       "round-abc",
		ActionText:    "I build a shelter and wait for rescue",
		Survived:      true,
		Feedback:      "Good plan.",
		Metadata:      models.JSONMap{"source": "local"},
	}
	err := repo.Create(ctx, action)
	require.NoError(t, err)
	assert.NotZero(t, action.ID)

	found, err := repo.FindByRoundID(ctx, "round-abc")
	require.NoError(t, err)
	assert.True(t, found.Survived)
	assert.Equal(t, "local", found.Metadata["source"])
}

func TestPlayerActionRepository_CreateDuplicateRound(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewPlayerActionRepository(db)
	ctx := context.Background()

	player := CreateTestPlayer(t, db, "alex")
	situation := CreateTestSituation(t, db, models.CategoryNature, "lost in a cave")
	session := CreateTestSession(t, db, player.ID, situation.ID)

	first := &models.PlayerAction{
		GameSessionID: session.ID,
		RoundID:       "round-dup",
		ActionText:    "first",
	}
	require.NoError(t, repo.Create(ctx, first))

	// 回合ID唯一索引
	dup := &models.PlayerAction{
		GameSessionID: session.ID,
		RoundID:       "round-dup",
		ActionText:    "second",
	}
	err := repo.Create(ctx, dup)
	assert.Error(t, err)
}

func TestPlayerActionRepository_FindBySessionID(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewPlayerActionRepository(db)
	ctx := context.Background()

	player := CreateTestPlayer(t, db, "alex")
	situation := CreateTestSituation(t, db, models.CategoryNature, "lost in a cave")
	session := CreateTestSession(t, db, player.ID, situation.ID)
	other := CreateTestSession(t, db, player.ID, situation.ID)

	CreateTestAction(t, db, session.ID, true)
	CreateTestAction(t, db, session.ID, false)
	CreateTestAction(t, db, other.ID, true)

	actions, err := repo.FindBySessionID(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, actions, 2)

	count, err := repo.CountBySessionID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
