package repository

import (
	"context"
	"time"

	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"gorm.io/gorm"
)

// GameSessionRepository 游戏会话仓储接口
type GameSessionRepository interface {
	BaseRepository
	Create(ctx context.Context, session *models.GameSession) error
	Update(ctx context.Context, session *models.GameSession) error
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uint) (*models.GameSession, error)
	FindByPlayerID(ctx context.Context, playerID uint, p *Pagination) ([]*models.GameSession, error)
	FindActiveByPlayerID(ctx context.Context, playerID uint) (*models.GameSession, error)
	DeactivateByPlayerID(ctx context.Context, playerID uint) (int64, error)
	Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
}

// LeaderboardEntry 排行榜条目
//
// 只统计已结束的会话，按玩家聚合取最高得分。
type LeaderboardEntry struct {
	PlayerID    uint      `json:"player_id"`
	PlayerName  string    `json:"player_name"`
	BestScore   int       `json:"best_score"`
	GamesPlayed int64     `json:"games_played"`
	LastPlayed  time.Time `json:"last_played"`
}

// gameSessionRepo 游戏会话仓储实现
type gameSessionRepo struct {
	*BaseRepo
}

// NewGameSessionRepository 创建游戏会话仓储
func NewGameSessionRepository(db *gorm.DB) GameSessionRepository {
	return &gameSessionRepo{
		BaseRepo: NewBaseRepo(db),
	}
}

// Create 创建游戏会话
func (r *gameSessionRepo) Create(ctx context.Context, session *models.GameSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// Update 更新游戏会话
func (r *gameSessionRepo) Update(ctx context.Context, session *models.GameSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// UpdateFields 按字段更新会话
func (r *gameSessionRepo) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.GameSession{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// FindByID 根据ID查找会话
func (r *gameSessionRepo) FindByID(ctx context.Context, id uint) (*models.GameSession, error) {
	var session models.GameSession
	err := r.db.WithContext(ctx).
		Preload("Player").
		Preload("Situation").
		First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByPlayerID 根据玩家ID查找会话（分页）
func (r *gameSessionRepo) FindByPlayerID(ctx context.Context, playerID uint, p *Pagination) ([]*models.GameSession, error) {
	var sessions []*models.GameSession

	r.db.WithContext(ctx).
		Model(&models.GameSession{}).
		Where("player_id = ?", playerID).
		Count(&p.Total)

	err := r.db.WithContext(ctx).
		Preload("Situation").
		Where("player_id = ?", playerID).
		Order("created_at desc").
		Scopes(Paginate(p)).
		Find(&sessions).Error

	return sessions, err
}

// FindActiveByPlayerID 查找玩家当前活跃的会话
//
// 没有活跃会话时返回 (nil, nil)。
func (r *gameSessionRepo) FindActiveByPlayerID(ctx context.Context, playerID uint) (*models.GameSession, error) {
	var session models.GameSession
	err := r.db.WithContext(ctx).
		Preload("Situation").
		Where("player_id = ? AND is_active = ?", playerID, true).
		Order("created_at desc").
		First(&session).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeactivateByPlayerID 结束玩家的所有活跃会话
//
// 开新会话前调用，保证每个玩家同时最多一个活跃会话。
func (r *gameSessionRepo) DeactivateByPlayerID(ctx context.Context, playerID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.GameSession{}).
		Where("player_id = ? AND is_active = ?", playerID, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

// Leaderboard 排行榜查询
//
// 按玩家聚合已结束会话的最高得分，得分相同时最近游玩者在前。
func (r *gameSessionRepo) Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	var entries []*LeaderboardEntry

	err := r.db.WithContext(ctx).
		Table("game_sessions").
		Select(
			"players.id as player_id",
			"players.name as player_name",
			"MAX(game_sessions.score) as best_score",
			"COUNT(game_sessions.id) as games_played",
			"MAX(game_sessions.created_at) as last_played",
		).
		Joins("JOIN players ON players.id = game_sessions.player_id").
		Where("game_sessions.is_active = ? AND game_sessions.deleted_at IS NULL", false).
		Group("players.id, players.name").
		Order("best_score DESC, last_played DESC").
		Limit(limit).
		Scan(&entries).Error

	return entries, err
}

// WithTx 使用事务
func (r *gameSessionRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &gameSessionRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}
