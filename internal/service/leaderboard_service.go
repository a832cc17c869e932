package service

import (
	"context"

	apperrors "github.com/Abdu-Alim/Death-by-AI/internal/errors"
	"github.com/Abdu-Alim/Death-by-AI/internal/repository"
	"go.uber.org/zap"
)

// 排行榜长度限制
const (
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
)

// leaderboardService 排行榜服务实现
type leaderboardService struct {
	sessionRepo repository.GameSessionRepository
	defaultSize int
	log         *zap.Logger
}

// NewLeaderboardService 创建排行榜服务
func NewLeaderboardService(
	sessionRepo repository.GameSessionRepository,
	defaultSize int,
	log *zap.Logger,
) LeaderboardService {
	if defaultSize <= 0 {
		defaultSize = defaultLeaderboardSize
	}
	return &leaderboardService{
		sessionRepo: sessionRepo,
		defaultSize: defaultSize,
		log:         log,
	}
}

// Top 返回前 n 名
//
// 只统计已结束的会话。n 非正时取默认长度，超过上限时截断。
func (s *leaderboardService) Top(ctx context.Context, n int) ([]*repository.LeaderboardEntry, error) {
	if n <= 0 {
		n = s.defaultSize
	}
	if n > maxLeaderboardSize {
		n = maxLeaderboardSize
	}

	entries, err := s.sessionRepo.Leaderboard(ctx, n)
	if err != nil {
		s.log.Error("Failed to query leaderboard", zap.Error(err))
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery, "查询排行榜失败")
	}
	if entries == nil {
		entries = []*repository.LeaderboardEntry{}
	}
	return entries, nil
}
