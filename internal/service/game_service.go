package service

import (
	"context"
	"strings"
	"sync"

	apperrors "github.com/Abdu-Alim/Death-by-AI/internal/errors"
	"github.com/Abdu-Alim/Death-by-AI/internal/game"
	"github.com/Abdu-Alim/Death-by-AI/internal/logger"
	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"github.com/Abdu-Alim/Death-by-AI/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// sessionLocker 按会话ID加锁，保证同一会话的回合串行结算
type sessionLocker struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newSessionLocker() *sessionLocker {
	return &sessionLocker{
		locks: make(map[uint]*sync.Mutex),
	}
}

func (l *sessionLocker) get(sessionID uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if m, ok := l.locks[sessionID]; ok {
		return m
	}
	m := &sync.Mutex{}
	l.locks[sessionID] = m
	return m
}

// release 会话结束后移除锁条目，避免锁表随历史会话无限增长
func (l *sessionLocker) release(sessionID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.locks, sessionID)
}

// gameService 游戏会话服务实现
type gameService struct {
	manager       *repository.Manager
	playerRepo    repository.PlayerRepository
	situationRepo repository.SituationRepository
	sessionRepo   repository.GameSessionRepository
	actionRepo    repository.PlayerActionRepository
	chain         *game.Chain
	initialLives  int
	locker        *sessionLocker
	log           *zap.Logger
}

// NewGameService 创建游戏会话服务
func NewGameService(
	manager *repository.Manager,
	chain *game.Chain,
	initialLives int,
	log *zap.Logger,
) GameService {
	if initialLives <= 0 {
		initialLives = models.DefaultLives
	}
	return &gameService{
		manager:       manager,
		playerRepo:    manager.Player(),
		situationRepo: manager.Situation(),
		sessionRepo:   manager.GameSession(),
		actionRepo:    manager.PlayerAction(),
		chain:         chain,
		initialLives:  initialLives,
		locker:        newSessionLocker(),
		log:           log,
	}
}

// 开局情境直接取自情境库时的来源标记
const situationSourceStore = "store"

// StartSession 为玩家开启新会话
//
// 开局情境优先从情境库随机抽取，库中无该分类情境时才向
// 文本生成服务请求（服务不可用时使用备用情境）。
// 玩家既有活跃会话一律先结束。
func (s *gameService) StartSession(ctx context.Context, playerName string, category models.Category) (*models.GameSession, error) {
	if strings.TrimSpace(playerName) == "" {
		return nil, apperrors.New(apperrors.ErrInvalidParam, "玩家名称不能为空")
	}
	if category != "" && !category.Valid() {
		return nil, apperrors.New(apperrors.ErrInvalidCategory, "无效的情境分类")
	}
	if category == "" {
		category = models.CategoryNature
	}

	player, err := s.playerRepo.GetOrCreate(ctx, playerName)
	if err != nil {
		s.log.Error("Failed to get or create player", zap.Error(err), zap.String("player", playerName))
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery, "获取玩家失败")
	}

	situation, source, err := s.drawStartingSituation(ctx, category)
	if err != nil {
		return nil, err
	}

	deactivated, err := s.sessionRepo.DeactivateByPlayerID(ctx, player.ID)
	if err != nil {
		s.log.Error("Failed to deactivate prior sessions", zap.Error(err), zap.Uint("playerID", player.ID))
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseUpdate, "结束既有会话失败")
	}

	session := &models.GameSession{
		PlayerID:    player.ID,
		SituationID: situation.ID,
		Lives:       s.initialLives,
		Score:       0,
		IsActive:    true,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.Uint("playerID", player.ID))
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseInsert, "创建会话失败")
	}

	session.Player = *player
	session.Situation = *situation

	s.log.Info("Session started",
		zap.Uint("sessionID", session.ID),
		zap.String("player", player.Name),
		zap.String("category", string(category)),
		zap.String("situationSource", source),
		zap.Int64("deactivated", deactivated),
	)
	return session, nil
}

// GetSession 获取会话
func (s *gameService) GetSession(ctx context.Context, sessionID uint) (*models.GameSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.ErrSessionNotFound, "游戏会话不存在")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery, "查询会话失败")
	}
	return session, nil
}

// SubmitPlan 提交生存计划并结算一轮
//
// 行动记录与会话计数在同一事务内提交，评估在事务外完成。
func (s *gameService) SubmitPlan(ctx context.Context, sessionID uint, plan string) (*RoundResult, error) {
	plan = strings.TrimSpace(plan)
	if plan == "" {
		return nil, apperrors.New(apperrors.ErrEmptyPlan, "生存计划不能为空")
	}

	lock := s.locker.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Ended() {
		return nil, apperrors.New(apperrors.ErrSessionEnded, "游戏会话已结束")
	}

	outcome := s.chain.EvaluatePlan(ctx, session.Situation.Text, plan)

	lives := session.Lives
	score := session.Score
	if outcome.Survived {
		score++
	} else {
		lives--
	}
	ended := lives <= 0

	roundID := uuid.New().String()
	action := &models.PlayerAction{
		GameSessionID: session.ID,
		RoundID:       roundID,
		ActionText:    plan,
		Survived:      outcome.Survived,
		Feedback:      outcome.Feedback,
		Metadata:      models.JSONMap{"source": outcome.Source},
	}

	err = s.manager.WithTransaction(ctx, func(tx *repository.Transaction) error {
		if err := tx.PlayerAction().Create(ctx, action); err != nil {
			return err
		}
		return tx.GameSession().UpdateFields(ctx, session.ID, map[string]interface{}{
			"lives":     lives,
			"score":     score,
			"is_active": !ended,
		})
	})
	if err != nil {
		s.log.Error("Failed to commit round", zap.Error(err), zap.Uint("sessionID", sessionID))
		return nil, apperrors.Wrap(err, apperrors.ErrTransaction, "回合结算失败")
	}

	if ended {
		s.locker.release(sessionID)
	}

	logger.LogRoundEvent("round_resolved", sessionID, map[string]interface{}{
		"round_id": roundID,
		"survived": outcome.Survived,
		"source":   outcome.Source,
		"lives":    lives,
		"score":    score,
	})

	return &RoundResult{
		RoundID:      roundID,
		Survived:     outcome.Survived,
		Feedback:     outcome.Feedback,
		Lives:        lives,
		Score:        score,
		SessionEnded: ended,
	}, nil
}

// AdvanceSituation 为活跃会话更换情境
//
// 从整个情境库随机抽取，库中多于一条时排除当前情境，
// 仅剩当前一条时退回当前情境。
func (s *gameService) AdvanceSituation(ctx context.Context, sessionID uint) (*models.Situation, error) {
	lock := s.locker.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Ended() {
		return nil, apperrors.New(apperrors.ErrSessionEnded, "游戏会话已结束")
	}

	next, err := s.situationRepo.RandomExcluding(ctx, "", session.SituationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.ErrSituationMissing, "没有可用的情境")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery, "抽取情境失败")
	}

	if next.ID != session.SituationID {
		if err := s.sessionRepo.UpdateFields(ctx, session.ID, map[string]interface{}{
			"situation_id": next.ID,
		}); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrDatabaseUpdate, "更换情境失败")
		}
	}

	s.log.Info("Situation advanced",
		zap.Uint("sessionID", sessionID),
		zap.Uint("situationID", next.ID),
	)
	return next, nil
}

// EndSession 主动结束会话，对已结束的会话幂等
func (s *gameService) EndSession(ctx context.Context, sessionID uint) (*models.GameSession, error) {
	lock := s.locker.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Ended() {
		s.locker.release(sessionID)
		return session, nil
	}

	if err := s.sessionRepo.UpdateFields(ctx, session.ID, map[string]interface{}{
		"is_active": false,
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseUpdate, "结束会话失败")
	}

	session.IsActive = false
	s.locker.release(sessionID)
	s.log.Info("Session ended", zap.Uint("sessionID", sessionID), zap.Int("score", session.Score))
	return session, nil
}

// ListActions 列出会话的全部行动记录
func (s *gameService) ListActions(ctx context.Context, sessionID uint) ([]*models.PlayerAction, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	actions, err := s.actionRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery, "查询行动记录失败")
	}
	return actions, nil
}

// drawStartingSituation 抽取开局情境
//
// 情境库有存货时直接随机抽取；该分类下没有任何情境时
// 才走生成链，生成的文本按内容去重入库。
func (s *gameService) drawStartingSituation(ctx context.Context, category models.Category) (*models.Situation, string, error) {
	situation, err := s.situationRepo.Random(ctx, category)
	if err == nil {
		return situation, situationSourceStore, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, "", apperrors.Wrap(err, apperrors.ErrDatabaseQuery, "抽取情境失败")
	}

	text, source := s.chain.GenerateSituation(ctx, category)
	situation, err = s.findOrCreateSituation(ctx, text, category)
	if err != nil {
		return nil, "", err
	}
	return situation, source, nil
}

// findOrCreateSituation 按文本去重入库
func (s *gameService) findOrCreateSituation(ctx context.Context, text string, category models.Category) (*models.Situation, error) {
	existing, err := s.situationRepo.FindByText(ctx, text)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseQuery, "查询情境失败")
	}

	situation := &models.Situation{
		Text:     text,
		Category: category,
	}
	if err := s.situationRepo.Create(ctx, situation); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDatabaseInsert, "创建情境失败")
	}
	return situation, nil
}
