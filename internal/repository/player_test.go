package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"gorm.io/gorm"
)

func TestPlayerRepository_Create(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewPlayerRepository(db)
	ctx := context.Background()

	// 创建玩家时名称会被规范化
	player := &models.Player{Name: "  Alex  "}
	err := repo.Create(ctx, player)
	require.NoError(t, err)
	assert.NotZero(t, player.ID)
	assert.Equal(t, "alex", player.Name)
}

func TestPlayerRepository_FindByName(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewPlayerRepository(db)
	ctx := context.Background()

	CreateTestPlayer(t, db, "alex")

	// 查询时同样规范化，大小写与空白不影响命中
	found, err := repo.FindByName(ctx, "  ALEX ")
	require.NoError(t, err)
	assert.Equal(t, "alex", found.Name)

	// 不存在的玩家
	_, err = repo.FindByName(ctx, "nobody")
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestPlayerRepository_GetOrCreate(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewPlayerRepository(db)
	ctx := context.Background()

	// 第一次调用创建
	first, err := repo.GetOrCreate(ctx, "Alex")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	// 第二次调用返回同一玩家
	second, err := repo.GetOrCreate(ctx, "alex ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// 不会产生重复记录
	var count int64
	db.Model(&models.Player{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPlayerRepository_List(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewPlayerRepository(db)
	ctx := context.Background()

	CreateTestPlayer(t, db, "alex")
	CreateTestPlayer(t, db, "jordan")
	CreateTestPlayer(t, db, "sam")

	pagination := NewPagination(1, 2)
	players, err := repo.List(ctx, pagination)
	require.NoError(t, err)
	assert.Len(t, players, 2)
	assert.Equal(t, int64(3), pagination.Total)
}
