package repository

import (
	"context"

	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"gorm.io/gorm"
)

// SituationRepository 情境仓储接口
type SituationRepository interface {
	BaseRepository
	Create(ctx context.Context, situation *models.Situation) error
	FindByID(ctx context.Context, id uint) (*models.Situation, error)
	FindByText(ctx context.Context, text string) (*models.Situation, error)
	FindByCategory(ctx context.Context, category models.Category, p *Pagination) ([]*models.Situation, error)
	Random(ctx context.Context, category models.Category) (*models.Situation, error)
	RandomExcluding(ctx context.Context, category models.Category, excludeID uint) (*models.Situation, error)
	CountByCategory(ctx context.Context, category models.Category) (int64, error)
}

// situationRepo 情境仓储实现
type situationRepo struct {
	*BaseRepo
}

// NewSituationRepository 创建情境仓储
func NewSituationRepository(db *gorm.DB) SituationRepository {
	return &situationRepo{
		BaseRepo: NewBaseRepo(db),
	}
}

// Create 创建情境
func (r *situationRepo) Create(ctx context.Context, situation *models.Situation) error {
	return r.db.WithContext(ctx).Create(situation).Error
}

// FindByID 根据ID查找情境
func (r *situationRepo) FindByID(ctx context.Context, id uint) (*models.Situation, error) {
	var situation models.Situation
	err := r.db.WithContext(ctx).First(&situation, id).Error
	if err != nil {
		return nil, err
	}
	return &situation, nil
}

// FindByText 根据文本查找情境
func (r *situationRepo) FindByText(ctx context.Context, text string) (*models.Situation, error) {
	var situation models.Situation
	err := r.db.WithContext(ctx).
		Where("text = ?", text).
		First(&situation).Error
	if err != nil {
		return nil, err
	}
	return &situation, nil
}

// FindByCategory 根据分类查找情境（分页）
func (r *situationRepo) FindByCategory(ctx context.Context, category models.Category, p *Pagination) ([]*models.Situation, error) {
	var situations []*models.Situation

	query := r.db.WithContext(ctx).Model(&models.Situation{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	query.Count(&p.Total)

	err := query.
		Order("created_at desc").
		Scopes(Paginate(p)).
		Find(&situations).Error

	return situations, err
}

// Random 随机返回一条情境
//
// category 为空时不限分类。RANDOM() 在 SQLite/PostgreSQL 下可用，
// MySQL 需改为 RAND()，当前部署目标以 SQLite 为主。
func (r *situationRepo) Random(ctx context.Context, category models.Category) (*models.Situation, error) {
	var situation models.Situation
	query := r.db.WithContext(ctx)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("RANDOM()").First(&situation).Error
	if err != nil {
		return nil, err
	}
	return &situation, nil
}

// RandomExcluding 随机返回一条情境，排除指定ID
//
// 分类下仅剩被排除的一条时退回该条，保证总能给出情境。
func (r *situationRepo) RandomExcluding(ctx context.Context, category models.Category, excludeID uint) (*models.Situation, error) {
	var situation models.Situation
	query := r.db.WithContext(ctx).Where("id != ?", excludeID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("RANDOM()").First(&situation).Error
	if err == gorm.ErrRecordNotFound {
		return r.Random(ctx, category)
	}
	if err != nil {
		return nil, err
	}
	return &situation, nil
}

// CountByCategory 统计分类下的情境数
func (r *situationRepo) CountByCategory(ctx context.Context, category models.Category) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Situation{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Count(&count).Error
	return count, err
}

// WithTx 使用事务
func (r *situationRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &situationRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}
