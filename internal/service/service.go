package service

import (
	"math/rand"
	"time"

	"github.com/Abdu-Alim/Death-by-AI/internal/ai"
	"github.com/Abdu-Alim/Death-by-AI/internal/config"
	"github.com/Abdu-Alim/Death-by-AI/internal/game"
	"github.com/Abdu-Alim/Death-by-AI/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services 服务集合
type Services struct {
	Player      PlayerService
	Situation   SituationService
	Game        GameService
	Leaderboard LeaderboardService
}

// NewServices 创建服务集合
//
// aiClient 可为 nil，此时评估与情境生成全部走本地逻辑。
func NewServices(db *gorm.DB, cfg *config.Config, aiClient ai.Client, log *zap.Logger) *Services {
	manager := repository.NewManager(db)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	evaluator := game.NewEvaluator(&cfg.Game)
	story := game.NewStoryEvaluator(evaluator, rng)
	chain := game.NewChain(aiClient, evaluator, story, cfg.Game.StoryMode, rng, log)

	return &Services{
		Player:      NewPlayerService(manager.Player(), manager.GameSession(), log),
		Situation:   NewSituationService(manager.Situation(), manager.Player(), chain, log),
		Game:        NewGameService(manager, chain, cfg.Game.InitialLives, log),
		Leaderboard: NewLeaderboardService(manager.GameSession(), cfg.Game.LeaderboardSize, log),
	}
}
