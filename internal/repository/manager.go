package repository

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// Manager 仓储管理器，提供所有仓储的统一访问接口
type Manager struct {
	db *gorm.DB

	// 事务管理器
	txManager TransactionManager

	// 仓储实例（使用懒加载）
	playerOnce sync.Once
	player     PlayerRepository

	situationOnce sync.Once
	situation     SituationRepository

	gameSessionOnce sync.Once
	gameSession     GameSessionRepository

	playerActionOnce sync.Once
	playerAction     PlayerActionRepository
}

// NewManager 创建仓储管理器
func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		db:        db,
		txManager: NewTransactionManager(db),
	}
}

// GetDB 获取数据库实例
func (m *Manager) GetDB() *gorm.DB {
	return m.db
}

// Player 获取玩家仓储
func (m *Manager) Player() PlayerRepository {
	m.playerOnce.Do(func() {
		m.player = NewPlayerRepository(m.db)
	})
	return m.player
}

// Situation 获取情境仓储
func (m *Manager) Situation() SituationRepository {
	m.situationOnce.Do(func() {
		m.situation = NewSituationRepository(m.db)
	})
	return m.situation
}

// GameSession 获取游戏会话仓储
func (m *Manager) GameSession() GameSessionRepository {
	m.gameSessionOnce.Do(func() {
		m.gameSession = NewGameSessionRepository(m.db)
	})
	return m.gameSession
}

// PlayerAction 获取玩家行动仓储
func (m *Manager) PlayerAction() PlayerActionRepository {
	m.playerActionOnce.Do(func() {
		m.playerAction = NewPlayerActionRepository(m.db)
	})
	return m.playerAction
}

// WithTransaction 在事务中执行操作
func (m *Manager) WithTransaction(ctx context.Context, fn func(tx *Transaction) error) error {
	return m.txManager.WithTransaction(ctx, fn)
}
