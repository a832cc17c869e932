package repository

import (
	"context"

	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"gorm.io/gorm"
)

// PlayerRepository 玩家仓储接口
type PlayerRepository interface {
	BaseRepository
	Create(ctx context.Context, player *models.Player) error
	Update(ctx context.Context, player *models.Player) error
	FindByID(ctx context.Context, id uint) (*models.Player, error)
	FindByName(ctx context.Context, name string) (*models.Player, error)
	GetOrCreate(ctx context.Context, name string) (*models.Player, error)
	List(ctx context.Context, p *Pagination) ([]*models.Player, error)
}

// playerRepo 玩家仓储实现
type playerRepo struct {
	*BaseRepo
}

// NewPlayerRepository 创建玩家仓储
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepo{
		BaseRepo: NewBaseRepo(db),
	}
}

// Create 创建玩家
func (r *playerRepo) Create(ctx context.Context, player *models.Player) error {
	player.Name = models.NormalizePlayerName(player.Name)
	return r.db.WithContext(ctx).Create(player).Error
}

// Update 更新玩家
func (r *playerRepo) Update(ctx context.Context, player *models.Player) error {
	return r.db.WithContext(ctx).Save(player).Error
}

// FindByID 根据ID查找玩家
func (r *playerRepo) FindByID(ctx context.Context, id uint) (*models.Player, error) {
	var player models.Player
	err := r.db.WithContext(ctx).First(&player, id).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// FindByName 根据名称查找玩家（名称在查询前会被规范化）
func (r *playerRepo) FindByName(ctx context.Context, name string) (*models.Player, error) {
	var player models.Player
	err := r.db.WithContext(ctx).
		Where("name = ?", models.NormalizePlayerName(name)).
		First(&player).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// GetOrCreate 查找或创建玩家
//
// 名称唯一索引下并发创建可能冲突，冲突时重新查询。
func (r *playerRepo) GetOrCreate(ctx context.Context, name string) (*models.Player, error) {
	normalized := models.NormalizePlayerName(name)

	player, err := r.FindByName(ctx, normalized)
	if err == nil {
		return player, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	created := &models.Player{Name: normalized}
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		// 可能被并发请求抢先创建
		if existing, findErr := r.FindByName(ctx, normalized); findErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return created, nil
}

// List 玩家列表（分页）
func (r *playerRepo) List(ctx context.Context, p *Pagination) ([]*models.Player, error) {
	var players []*models.Player

	r.db.WithContext(ctx).
		Model(&models.Player{}).
		Count(&p.Total)

	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Scopes(Paginate(p)).
		Find(&players).Error

	return players, err
}

// WithTx 使用事务
func (r *playerRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &playerRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}
