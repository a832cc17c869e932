package models

// 会话状态
const (
	DefaultLives = 3 // 新会话初始生命数
)

// GameSession 游戏会话表
//
// 不变量：lives >= 0；lives 到 0 后 is_active 必须为 false 且不再激活；
// 同一玩家任意时刻至多一个活跃会话。
type GameSession struct {
	BaseModel
	PlayerID    uint `gorm:"not null;index" json:"player_id"`
	SituationID uint `gorm:"not null;index" json:"situation_id"`
	Lives       int  `gorm:"default:3" json:"lives"`
	Score       int  `gorm:"default:0" json:"score"`
	IsActive    bool `gorm:"default:true;index" json:"is_active"`

	// 关联
	Player    Player         `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
	Situation Situation      `gorm:"foreignKey:SituationID" json:"situation,omitempty"`
	Actions   []PlayerAction `gorm:"foreignKey:GameSessionID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定GameSession表名
func (GameSession) TableName() string {
	return "game_sessions"
}

// Ended 会话是否已结束
func (s *GameSession) Ended() bool {
	return !s.IsActive || s.Lives <= 0
}

// PlayerAction 玩家行动记录表（每回合一条，只追加）
type PlayerAction struct {
	BaseModel
	GameSessionID uint    `gorm:"not null;index" json:"game_session_id"`
	RoundID       string  `gorm:"uniqueIndex;size:64;not null" json:"round_id"`
	ActionText    string  `gorm:"type:text;not null" json:"action_text"`
	Survived      bool    `gorm:"default:false" json:"survived"`
	Feedback      string  `gorm:"type:text" json:"feedback"`
	Metadata      JSONMap `gorm:"type:json" json:"metadata,omitempty"`

	// 关联
	Session GameSession `gorm:"foreignKey:GameSessionID" json:"-"`
}

// TableName 指定PlayerAction表名
func (PlayerAction) TableName() string {
	return "player_actions"
}
