package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/Abdu-Alim/Death-by-AI/internal/models"
)

func TestSituationRepository_Create(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewSituationRepository(db)
	ctx := context.Background()

	situation := &models.Situation{
		Text:     "You are lost in a deep cave with a dying flashlight.",
		Category: models.CategoryNature,
	}
	err := repo.Create(ctx, situation)
	require.NoError(t, err)
	assert.NotZero(t, situation.ID)

	found, err := repo.FindByText(ctx, situation.Text)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryNature, found.Category)
}

func TestSituationRepository_Random(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewSituationRepository(db)
	ctx := context.Background()

	CreateTestSituation(t, db, models.CategoryNature, "nature one")
	CreateTestSituation(t, db, models.CategoryNature, "nature two")
	CreateTestSituation(t, db, models.CategoryDisaster, "disaster one")

	// 指定分类时只返回该分类
	for i := 0; i < 5; i++ {
		s, err := repo.Random(ctx, models.CategoryNature)
		require.NoError(t, err)
		assert.Equal(t, models.CategoryNature, s.Category)
	}

	// 不限分类
	s, err := repo.Random(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, s.Text)
}

func TestSituationRepository_RandomExcluding(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewSituationRepository(db)
	ctx := context.Background()

	first := CreateTestSituation(t, db, models.CategoryFantasy, "fantasy one")
	second := CreateTestSituation(t, db, models.CategoryFantasy, "fantasy two")

	// 两条时必须返回未被排除的那条
	for i := 0; i < 5; i++ {
		s, err := repo.RandomExcluding(ctx, models.CategoryFantasy, first.ID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, s.ID)
	}

	// 分类下仅剩被排除的一条时退回该条
	only := CreateTestSituation(t, db, models.CategoryDisaster, "disaster only")
	s, err := repo.RandomExcluding(ctx, models.CategoryDisaster, only.ID)
	require.NoError(t, err)
	assert.Equal(t, only.ID, s.ID)
}

func TestSituationRepository_CountByCategory(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewSituationRepository(db)
	ctx := context.Background()

	CreateTestSituation(t, db, models.CategoryNature, "nature one")
	CreateTestSituation(t, db, models.CategoryDisaster, "disaster one")
	CreateTestSituation(t, db, models.CategoryDisaster, "disaster two")

	count, err := repo.CountByCategory(ctx, models.CategoryDisaster)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	total, err := repo.CountByCategory(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestSituationRepository_FindByCategory(t *testing.T) {
	db := SetupTestDB()
	defer CleanupTestDB(db)
	repo := NewSituationRepository(db)
	ctx := context.Background()

	CreateTestSituation(t, db, models.CategoryNature, "nature one")
	CreateTestSituation(t, db, models.CategoryNature, "nature two")
	CreateTestSituation(t, db, models.CategoryFantasy, "fantasy one")

	pagination := NewPagination(1, 10)
	situations, err := repo.FindByCategory(ctx, models.CategoryNature, pagination)
	require.NoError(t, err)
	assert.Len(t, situations, 2)
	assert.Equal(t, int64(2), pagination.Total)
}
