package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// TransactionManager 事务管理器接口
type TransactionManager interface {
	// Begin 开始事务
	Begin(ctx context.Context) (*Transaction, error)
	// WithTransaction 在事务中执行函数
	WithTransaction(ctx context.Context, fn func(tx *Transaction) error) error
}

// Transaction 事务包装器
//
// 事务内的仓储实例懒加载，共享同一个 *gorm.DB 事务句柄。
type Transaction struct {
	tx         *gorm.DB
	ctx        context.Context
	committed  bool
	rolledback bool

	player       PlayerRepository
	situation    SituationRepository
	gameSession  GameSessionRepository
	playerAction PlayerActionRepository
}

// txManager 事务管理器实现
type txManager struct {
	db *gorm.DB
}

// NewTransactionManager 创建事务管理器
func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &txManager{db: db}
}

// Begin 开始事务
func (m *txManager) Begin(ctx context.Context) (*Transaction, error) {
	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &Transaction{
		tx:  tx,
		ctx: ctx,
	}, nil
}

// WithTransaction 在事务中执行函数
func (m *txManager) WithTransaction(ctx context.Context, fn func(tx *Transaction) error) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}

	// 确保事务被处理
	defer func() {
		if !tx.committed && !tx.rolledback {
			tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Commit 提交事务
func (t *Transaction) Commit() error {
	if t.committed {
		return fmt.Errorf("事务已提交")
	}
	if t.rolledback {
		return fmt.Errorf("事务已回滚")
	}

	if err := t.tx.Commit().Error; err != nil {
		return err
	}

	t.committed = true
	return nil
}

// Rollback 回滚事务
func (t *Transaction) Rollback() error {
	if t.committed {
		return fmt.Errorf("事务已提交")
	}
	if t.rolledback {
		return nil
	}

	if err := t.tx.Rollback().Error; err != nil {
		return err
	}

	t.rolledback = true
	return nil
}

// GetTx 获取事务数据库句柄
func (t *Transaction) GetTx() *gorm.DB {
	return t.tx
}

// Player 获取事务内的玩家仓储
func (t *Transaction) Player() PlayerRepository {
	if t.player == nil {
		t.player = NewPlayerRepository(t.tx)
	}
	return t.player
}

// Situation 获取事务内的情境仓储
func (t *Transaction) Situation() SituationRepository {
	if t.situation == nil {
		t.situation = NewSituationRepository(t.tx)
	}
	return t.situation
}

// GameSession 获取事务内的游戏会话仓储
func (t *Transaction) GameSession() GameSessionRepository {
	if t.gameSession == nil {
		t.gameSession = NewGameSessionRepository(t.tx)
	}
	return t.gameSession
}

// PlayerAction 获取事务内的玩家行动仓储
func (t *Transaction) PlayerAction() PlayerActionRepository {
	if t.playerAction == nil {
		t.playerAction = NewPlayerActionRepository(t.tx)
	}
	return t.playerAction
}
