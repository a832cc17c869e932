package models

// Category 情境分类
type Category string

const (
	CategoryNature   Category = "nature"   // 自然
	CategoryDisaster Category = "disaster" // 灾难
	CategoryFantasy  Category = "fantasy"  // 奇幻
)

// Categories 所有合法分类
var Categories = []Category{CategoryNature, CategoryDisaster, CategoryFantasy}

// Valid 检查分类是否合法
func (c Category) Valid() bool {
	switch c {
	case CategoryNature, CategoryDisaster, CategoryFantasy:
		return true
	}
	return false
}

// Situation 情境表
//
// 情境一旦创建即不可变，在多个会话之间共享只读。
// 来源：种子数据、用户提交或外部文本生成服务。
type Situation struct {
	BaseModel
	Text          string   `gorm:"type:text;not null" json:"text"`
	Category      Category `gorm:"size:20;not null;index" json:"category"`
	CreatedByID   *uint    `gorm:"index" json:"created_by_id,omitempty"`
	IsUserCreated bool     `gorm:"default:false" json:"is_user_created"`

	// 关联
	CreatedBy *Player `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// TableName 指定Situation表名
func (Situation) TableName() string {
	return "situations"
}
