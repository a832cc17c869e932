package service

import (
	"testing"

	"github.com/Abdu-Alim/Death-by-AI/internal/config"
	"github.com/Abdu-Alim/Death-by-AI/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTestServices 基于内存数据库构建服务集合
//
// 不配置文本生成服务客户端，评估走本地确定性逻辑。
func newTestServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	db := repository.SetupTestDB()
	t.Cleanup(func() {
		repository.CleanupTestDB(db)
	})

	cfg := &config.Config{
		Game: config.GameConfig{
			InitialLives:      3,
			SurvivalThreshold: 3,
			LengthBonusChars:  100,
			LeaderboardSize:   10,
		},
	}
	return NewServices(db, cfg, nil, zap.NewNop()), db
}
