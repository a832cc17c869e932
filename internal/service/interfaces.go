package service

import (
	"context"

	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"github.com/Abdu-Alim/Death-by-AI/internal/repository"
)

// PlayerService 玩家服务接口
type PlayerService interface {
	// CreatePlayer 创建玩家，名称已存在时返回既有玩家
	CreatePlayer(ctx context.Context, name string) (*models.Player, error)
	// GetPlayerByName 根据名称获取玩家
	GetPlayerByName(ctx context.Context, name string) (*models.Player, error)
	// GetPlayerSessions 获取玩家的会话历史（分页）
	GetPlayerSessions(ctx context.Context, name string, p *repository.Pagination) ([]*models.GameSession, error)
}

// SituationService 情境服务接口
type SituationService interface {
	// CreateUserSituation 创建玩家自定义情境
	CreateUserSituation(ctx context.Context, text string, category models.Category, creatorName string) (*models.Situation, error)
	// GenerateSituation 生成并入库一条情境，返回情境与来源
	GenerateSituation(ctx context.Context, category models.Category) (*models.Situation, string, error)
	// ListSituations 按分类列出情境（分页），分类为空时不过滤
	ListSituations(ctx context.Context, category models.Category, p *repository.Pagination) ([]*models.Situation, error)
}

// RoundResult 一轮提交的结果
type RoundResult struct {
	RoundID      string `json:"round_id"`
	Survived     bool   `json:"survived"`
	Feedback     string `json:"feedback"`
	Lives        int    `json:"lives"`
	Score        int    `json:"score"`
	SessionEnded bool   `json:"session_ended"`
}

// GameService 游戏会话服务接口
type GameService interface {
	// StartSession 为玩家开启新会话，玩家既有活跃会话会被结束
	StartSession(ctx context.Context, playerName string, category models.Category) (*models.GameSession, error)
	// GetSession 获取会话
	GetSession(ctx context.Context, sessionID uint) (*models.GameSession, error)
	// SubmitPlan 提交生存计划并结算一轮
	SubmitPlan(ctx context.Context, sessionID uint, plan string) (*RoundResult, error)
	// AdvanceSituation 为活跃会话更换情境
	AdvanceSituation(ctx context.Context, sessionID uint) (*models.Situation, error)
	// EndSession 主动结束会话，对已结束的会话幂等
	EndSession(ctx context.Context, sessionID uint) (*models.GameSession, error)
	// ListActions 列出会话的全部行动记录
	ListActions(ctx context.Context, sessionID uint) ([]*models.PlayerAction, error)
}

// LeaderboardService 排行榜服务接口
type LeaderboardService interface {
	// Top 返回前 n 名，n 非正时取默认值
	Top(ctx context.Context, n int) ([]*repository.LeaderboardEntry, error)
}
