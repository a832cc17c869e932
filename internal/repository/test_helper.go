package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB 为测试套件设置测试数据库
//
// 使用内存数据库，每次调用返回独立实例。
func SetupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	err = db.AutoMigrate(
		&models.Player{},
		&models.Situation{},
		&models.GameSession{},
		&models.PlayerAction{},
	)
	if err != nil {
		panic(err)
	}

	return db
}

// CleanupTestDB 清理测试数据库
func CleanupTestDB(db *gorm.DB) {
	sqlDB, _ := db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// CreateTestPlayer 创建测试玩家
func CreateTestPlayer(t *testing.T, db *gorm.DB, name string) *models.Player {
	player := &models.Player{Name: models.NormalizePlayerName(name)}
	require.NoError(t, db.Create(player).Error)
	return player
}

// CreateTestSituation 创建测试情境
func CreateTestSituation(t *testing.T, db *gorm.DB, category models.Category, text string) *models.Situation {
	situation := &models.Situation{
		Text:     text,
		Category: category,
	}
	require.NoError(t, db.Create(situation).Error)
	return situation
}

// CreateTestSession 创建测试会话
func CreateTestSession(t *testing.T, db *gorm.DB, playerID, situationID uint) *models.GameSession {
	session := &models.GameSession{
		PlayerID:    playerID,
		SituationID: situationID,
		Lives:       models.DefaultLives,
		Score:       0,
		IsActive:    true,
	}
	require.NoError(t, db.Create(session).Error)
	return session
}

// CreateTestAction 创建测试行动记录
func CreateTestAction(t *testing.T, db *gorm.DB, sessionID uint, survived bool) *models.PlayerAction {
	action := &models.PlayerAction{
		GameSessionID: sessionID,
		RoundID:       fmt.Sprintf("round-%d-%d", sessionID, time.Now().UnixNano()),
		ActionText:    "I build a shelter and stay calm",
		Survived:      survived,
		Feedback:      "test feedback",
	}
	require.NoError(t, db.Create(action).Error)
	return action
}

// AssertSession 验证游戏会话
func AssertSession(t *testing.T, expected, actual *models.GameSession) {
	assert.Equal(t, expected.PlayerID, actual.PlayerID)
	assert.Equal(t, expected.SituationID, actual.SituationID)
	assert.Equal(t, expected.Lives, actual.Lives)
	assert.Equal(t, expected.Score, actual.Score)
	assert.Equal(t, expected.IsActive, actual.IsActive)
}
