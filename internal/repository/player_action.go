package repository

import (
	"context"

	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"gorm.io/gorm"
)

// PlayerActionRepository 玩家行动仓储接口
type PlayerActionRepository interface {
	BaseRepository
	Create(ctx context.Context, action *models.PlayerAction) error
	FindByID(ctx context.Context, id uint) (*models.PlayerAction, error)
	FindByRoundID(ctx context.Context, roundID string) (*models.PlayerAction, error)
	FindBySessionID(ctx context.Context, sessionID uint) ([]*models.PlayerAction, error)
	CountBySessionID(ctx context.Context, sessionID uint) (int64, error)
}

// playerActionRepo 玩家行动仓储实现
type playerActionRepo struct {
	*BaseRepo
}

// NewPlayerActionRepository 创建玩家行动仓储
func NewPlayerActionRepository(db *gorm.DB) PlayerActionRepository {
	return &playerActionRepo{
		BaseRepo: NewBaseRepo(db),
	}
}

// Create 创建行动记录
func (r *playerActionRepo) Create(ctx context.Context, action *models.PlayerAction) error {
	return r.db.WithContext(ctx).Create(action).Error
}

// FindByID 根据ID查找行动记录
func (r *playerActionRepo) FindByID(ctx context.Context, id uint) (*models.PlayerAction, error) {
	var action models.PlayerAction
	err := r.db.WithContext(ctx).First(&action, id).Error
	if err != nil {
		return nil, err
	}
	return &action, nil
}

// FindByRoundID 根据回合ID查找行动记录
func (r *playerActionRepo) FindByRoundID(ctx context.Context, roundID string) (*models.PlayerAction, error) {
	var action models.PlayerAction
	err := r.db.WithContext(ctx).
		Where("round_id = ?", roundID).
		First(&action).Error
	if err != nil {
		return nil, err
	}
	return &action, nil
}

// FindBySessionID 根据会话ID查找全部行动记录（按时间正序）
func (r *playerActionRepo) FindBySessionID(ctx context.Context, sessionID uint) ([]*models.PlayerAction, error) {
	var actions []*models.PlayerAction
	err := r.db.WithContext(ctx).
		Where("game_session_id = ?", sessionID).
		Order("created_at asc, id asc").
		Find(&actions).Error
	return actions, err
}

// CountBySessionID 统计会话行动数
func (r *playerActionRepo) CountBySessionID(ctx context.Context, sessionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PlayerAction{}).
		Where("game_session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}

// WithTx 使用事务
func (r *playerActionRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &playerActionRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}
