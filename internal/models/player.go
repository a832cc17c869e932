package models

import (
	"strings"
)

// Player 玩家表
//
// 玩家以规范化后的名字作为唯一身份，首次使用时自动创建，
// 正常游戏流程中不会被修改或删除。
type Player struct {
	BaseModel
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`

	// 关联（注意：不直接嵌入 GameSession，避免循环依赖）
	Sessions []GameSession `gorm:"foreignKey:PlayerID" json:"-"`
}

// TableName 指定Player表名
func (Player) TableName() string {
	return "players"
}

// NormalizePlayerName 规范化玩家名（去首尾空白并小写）
//
// 同一个名字的不同大小写/空白写法映射到同一个玩家。
func NormalizePlayerName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
