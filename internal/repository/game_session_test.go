package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/Abdu-Alim/Death-by-AI/internal/models"
)

func TestGameSessionRepository_Create(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewGameSessionRepository(db)
	ctx := context.Background()

	player := CreateTestPlayer(t, db, "alex")
	situation := CreateTestSituation(t, db, models.CategoryNature, "lost in a cave")

	session := &models.GameSession{
		PlayerID:    player.ID,
		SituationID: situation.ID,
		Lives:       models.DefaultLives,
		IsActive:    true,
	}
	err := repo.Create(ctx, session)
	require.NoError(t, err)
	assert.NotZero(t, session.ID)

	found, err := repo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	AssertSession(t, session, found)
	// FindByID 预加载关联
	assert.Equal(t, "alex", found.Player.Name)
	assert.Equal(t, "lost in a cave", found.Situation.Text)
}

func TestGameSessionRepository_UpdateFields(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewGameSessionRepository(db)
	ctx := context.Background()

	player := CreateTestPlayer(t, db, "alex")
	situation := CreateTestSituation(t, db, models.CategoryNature, "lost in a cave")
	session := CreateTestSession(t, db, player.ID, situation.ID)

	err := repo.UpdateFields(ctx, session.ID, map[string]interface{}{
		"lives":     1,
		"score":     5,
		"is_active": false,
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Lives)
	assert.Equal(t, 5, found.Score)
	assert.False(t, found.IsActive)
	assert.True(t, found.Ended())
}

func TestGameSessionRepository_FindActiveByPlayerID(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewGameSessionRepository(db)
	ctx := context.Background()

	player := CreateTestPlayer(t, db, "alex")
	situation := CreateTestSituation(t, db, models.CategoryNature, "lost in a cave")

	// 没有会话时返回 nil, nil
	found, err := repo.FindActiveByPlayerID(ctx, player.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// 已结束的会话不算活跃
	ended := CreateTestSession(t, db, player.ID, situation.ID)
	require.NoError(t, repo.UpdateFields(ctx, ended.ID, map[string]interface{}{"is_active": false}))

	active := CreateTestSession(t, db, player.ID, situation.ID)

	found, err = repo.FindActiveByPlayerID(ctx, player.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, active.ID, found.ID)
}

func TestGameSessionRepository_DeactivateByPlayerID(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewGameSessionRepository(db)
	ctx := context.Background()

	player := CreateTestPlayer(t, db, "alex")
	situation := CreateTestSituation(t, db, models.CategoryNature, "lost in a cave")
	CreateTestSession(t, db, player.ID, situation.ID)
	CreateTestSession(t, db, player.ID, situation.ID)

	affected, err := repo.DeactivateByPlayerID(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	found, err := repo.FindActiveByPlayerID(ctx, player.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGameSessionRepository_FindByPlayerID(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewGameSessionRepository(db)
	ctx := context.Background()

	player := CreateTestPlayer(t, db, "alex")
	situation := CreateTestSituation(t, db, models.CategoryNature, "lost in a cave")
	for i := 0; i < 5; i++ {
		CreateTestSession(t, db, player.ID, situation.ID)
	}

	pagination := NewPagination(1, 3)
	sessions, err := repo.FindByPlayerID(ctx, player.ID, pagination)
	require.NoError(t, err)
	assert.Len(t, sessions, 3)
	assert.Equal(t, int64(5), pagination.Total)
}

func TestGameSessionRepository_Leaderboard(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewGameSessionRepository(db)
	ctx := context.Background()

	alex := CreateTestPlayer(t, db, "alex")
	jordan := CreateTestPlayer(t, db, "jordan")
	sam := CreateTestPlayer(t, db, "sam")
	situation := CreateTestSituation(t, db, models.CategoryNature, "lost in a cave")

	endSession := func(playerID uint, score int) {
		s := CreateTestSession(t, db, playerID, situation.ID)
		require.NoError(t, repo.UpdateFields(ctx, s.ID, map[string]interface{}{
			"score":     score,
			"is_active": false,
		}))
	}

	// alex：两局，最高 7
	endSession(alex.ID, 3)
	endSession(alex.ID, 7)
	// jordan：一局，得分 5
	endSession(jordan.ID, 5)
	// sam：只有活跃会话，不进榜
	CreateTestSession(t, db, sam.ID, situation.ID)

	entries, err := repo.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "alex", entries[0].PlayerName)
	assert.Equal(t, 7, entries[0].BestScore)
	assert.Equal(t, int64(2), entries[0].GamesPlayed)

	assert.Equal(t, "jordan", entries[1].PlayerName)
	assert.Equal(t, 5, entries[1].BestScore)
}

func TestGameSessionRepository_Leaderboard_Limit(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewGameSessionRepository(db)
	ctx := context.Background()

	situation := CreateTestSituation(t, db, models.CategoryNature, "lost in a cave")
	names := []string{"p1", "p2", "p3"}
	for i, name := range names {
		player := CreateTestPlayer(t, db, name)
		s := CreateTestSession(t, db, player.ID, situation.ID)
		require.NoError(t, repo.UpdateFields(ctx, s.ID, map[string]interface{}{
			"score":     i + 1,
			"is_active": false,
		}))
	}

	entries, err := repo.Leaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "p3", entries[0].PlayerName)
	assert.Equal(t, "p2", entries[1].PlayerName)
}
