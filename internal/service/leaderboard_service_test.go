package service

import (
	"context"
	"testing"

	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardService_Top(t *testing.T) {
	services, db := newTestServices(t)
	ctx := context.Background()

	situation := &models.Situation{Text: "a cave", Category: models.CategoryNature}
	require.NoError(t, db.Create(situation).Error)

	endedSession := func(name string, score int) {
		var player models.Player
		require.NoError(t, db.Where(models.Player{Name: name}).FirstOrCreate(&player).Error)
		session := &models.GameSession{
			PlayerID:    player.ID,
			SituationID: situation.ID,
			Lives:       0,
			Score:       score,
			IsActive:    false,
		}
		require.NoError(t, db.Create(session).Error)
	}

	// p1 最高 5，p2 最高 3
	endedSession("p1", 2)
	endedSession("p1", 5)
	endedSession("p1", 1)
	endedSession("p2", 3)

	entries, err := services.Leaderboard.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "p1", entries[0].PlayerName)
	assert.Equal(t, 5, entries[0].BestScore)
	assert.Equal(t, "p2", entries[1].PlayerName)
	assert.Equal(t, 3, entries[1].BestScore)
}

func TestLeaderboardService_Top_Defaults(t *testing.T) {
	services, _ := newTestServices(t)
	ctx := context.Background()

	// 空榜返回空切片而不是 nil
	entries, err := services.Leaderboard.Top(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	// 超过上限不报错
	_, err = services.Leaderboard.Top(ctx, 10000)
	require.NoError(t, err)
}

func TestLeaderboardService_ExcludesActiveSessions(t *testing.T) {
	services, db := newTestServices(t)
	ctx := context.Background()

	session, err := services.Game.StartSession(ctx, "alex", models.CategoryNature)
	require.NoError(t, err)

	// 活跃会话得分不进榜
	require.NoError(t, db.Model(&models.GameSession{}).
		Where("id = ?", session.ID).
		Update("score", 9).Error)

	entries, err := services.Leaderboard.Top(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// 结束后进榜
	_, err = services.Game.EndSession(ctx, session.ID)
	require.NoError(t, err)

	entries, err = services.Leaderboard.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 9, entries[0].BestScore)
}
