package service

import (
	"context"
	"strings"

	apperrors "github.com/Abdu-Alim/Death-by-AI/internal/errors"
	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"github.com/Abdu-Alim/Death-by-AI/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// playerService 玩家服务实现
type playerService struct {
	playerRepo  repository.PlayerRepository
	sessionRepo repository.GameSessionRepository
	log         *zap.Logger
}

// NewPlayerService 创建玩家服务
func NewPlayerService(
	playerRepo repository.PlayerRepository,
	sessionRepo repository.GameSessionRepository,
	log *zap.Logger,
) PlayerService {
	return &playerService{
		playerRepo:  playerRepo,
		sessionRepo: sessionRepo,
		log:         log,
	}
}

// CreatePlayer 创建玩家，名称已存在时返回既有玩家
func (s *playerService) CreatePlayer(ctx context.Context, name string) (*models.Player, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.New(apperrors.ErrInvalidParam, "玩家名称不能为空")
	}

	player, err := s.playerRepo.GetOrCreate(ctx, name)
	if err != nil {
		s.log.Error("Failed to create player", zap.Error(err), zap.String("name", name))
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseInsert, "创建玩家失败")
	}
	return player, nil
}

// GetPlayerByName 根据名称获取玩家
func (s *playerService) GetPlayerByName(ctx context.Context, name string) (*models.Player, error) {
	player, err := s.playerRepo.FindByName(ctx, name)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.ErrPlayerNotFound, "玩家不存在")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery, "查询玩家失败")
	}
	return player, nil
}

// GetPlayerSessions 获取玩家的会话历史（分页）
func (s *playerService) GetPlayerSessions(ctx context.Context, name string, p *repository.Pagination) ([]*models.GameSession, error) {
	player, err := s.GetPlayerByName(ctx, name)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.FindByPlayerID(ctx, player.ID, p)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery, "查询会话历史失败")
	}
	return sessions, nil
}
