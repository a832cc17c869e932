package service

import (
	"context"
	"strings"

	apperrors "github.com/Abdu-Alim/Death-by-AI/internal/errors"
	"github.com/Abdu-Alim/Death-by-AI/internal/game"
	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"github.com/Abdu-Alim/Death-by-AI/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// situationService 情境服务实现
type situationService struct {
	situationRepo repository.SituationRepository
	playerRepo    repository.PlayerRepository
	chain         *game.Chain
	log           *zap.Logger
}

// NewSituationService 创建情境服务
func NewSituationService(
	situationRepo repository.SituationRepository,
	playerRepo repository.PlayerRepository,
	chain *game.Chain,
	log *zap.Logger,
) SituationService {
	return &situationService{
		situationRepo: situationRepo,
		playerRepo:    playerRepo,
		chain:         chain,
		log:           log,
	}
}

// CreateUserSituation 创建玩家自定义情境
func (s *situationService) CreateUserSituation(ctx context.Context, text string, category models.Category, creatorName string) (*models.Situation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.New(apperrors.ErrInvalidParam, "情境文本不能为空")
	}
	if !category.Valid() {
		return nil, apperrors.New(apperrors.ErrInvalidCategory, "无效的情境分类")
	}

	situation := &models.Situation{
		Text:          text,
		Category:      category,
		IsUserCreated: true,
	}

	if strings.TrimSpace(creatorName) != "" {
		creator, err := s.playerRepo.FindByName(ctx, creatorName)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.New(apperrors.ErrPlayerNotFound, "玩家不存在")
			}
			return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery, "查询玩家失败")
		}
		situation.CreatedByID = &creator.ID
	}

	if err := s.situationRepo.Create(ctx, situation); err != nil {
		s.log.Error("Failed to create situation", zap.Error(err))
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseInsert, "创建情境失败")
	}

	s.log.Info("User situation created",
		zap.Uint("situationID", situation.ID),
		zap.String("category", string(category)),
	)
	return situation, nil
}

// GenerateSituation 生成并入库一条情境
//
// 服务不可用时静默使用备用情境，同一文本不会重复入库。
func (s *situationService) GenerateSituation(ctx context.Context, category models.Category) (*models.Situation, string, error) {
	if !category.Valid() {
		return nil, "", apperrors.New(apperrors.ErrInvalidCategory, "无效的情境分类")
	}

	text, source := s.chain.GenerateSituation(ctx, category)

	existing, err := s.situationRepo.FindByText(ctx, text)
	if err == nil {
		return existing, source, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, "", apperrors.Wrap(err, apperrors.ErrDatabaseQuery, "查询情境失败")
	}

	situation := &models.Situation{
		Text:     text,
		Category: category,
	}
	if err := s.situationRepo.Create(ctx, situation); err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrDatabaseInsert, "创建情境失败")
	}

	s.log.Info("Situation generated",
		zap.Uint("situationID", situation.ID),
		zap.String("category", string(category)),
		zap.String("source", source),
	)
	return situation, source, nil
}

// ListSituations 按分类列出情境（分页）
func (s *situationService) ListSituations(ctx context.Context, category models.Category, p *repository.Pagination) ([]*models.Situation, error) {
	if category != "" && !category.Valid() {
		return nil, apperrors.New(apperrors.ErrInvalidCategory, "无效的情境分类")
	}

	situations, err := s.situationRepo.FindByCategory(ctx, category, p)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery, "查询情境列表失败")
	}
	return situations, nil
}
