package database

import (
	"fmt"

	"github.com/Abdu-Alim/Death-by-AI/internal/logger"
	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"go.uber.org/zap"
)

// seedSituations 初始情境数据
//
// 每个分类至少三条，保证新部署的情境库不为空。
var seedSituations = []models.Situation{
	// 自然
	{Text: "You are lost in a deep cave. Your flashlight is dying and you do not remember the way back.", Category: models.CategoryNature},
	{Text: "A storm has wrecked your boat on an uninhabited island. No radio, food for two days.", Category: models.CategoryNature},
	{Text: "You have met a grizzly bear in the forest. The bear has noticed you and is starting to approach.", Category: models.CategoryNature},
	{Text: "You woke up in a zoo, inside the panda enclosure. The pandas stare at you reproachfully and demand bamboo.", Category: models.CategoryNature},

	// 灾难
	{Text: "A fire has broken out in a skyscraper. You are on the 25th floor, the elevators are dead and the stairwell is full of smoke.", Category: models.CategoryDisaster},
	{Text: "There has been an accident at the nuclear power plant. Evacuation is announced, but every road out is jammed.", Category: models.CategoryDisaster},
	{Text: "A flood has swallowed the city. You are on a rooftop, the water keeps rising and no help is in sight.", Category: models.CategoryDisaster},
	{Text: "You are stuck in an elevator with a mime. For ten minutes he has been performing 'tragedy in a confined space'.", Category: models.CategoryDisaster},

	// 奇幻
	{Text: "You discovered you can read minds. Now other people's thoughts will not let you concentrate.", Category: models.CategoryFantasy},
	{Text: "You were given a ring that grants wishes, but every wish comes with a random side effect.", Category: models.CategoryFantasy},
	{Text: "You are in a world where technology fails and magic is real, but you are the only one without magical abilities.", Category: models.CategoryFantasy},
	{Text: "Your toaster has gained consciousness and demands equal rights with the rest of the appliances. It threatens to burn the bread.", Category: models.CategoryFantasy},
	{Text: "Giant squirrels have invaded the city. They demand all the nuts and threaten an acorn apocalypse.", Category: models.CategoryFantasy},
	{Text: "Your pizza came to life and ran away. It is now robbing banks and leaving pepperoni slices at every crime scene.", Category: models.CategoryFantasy},
}

// SeedSituations 填充初始情境数据（按文本去重，可重复执行）
func SeedSituations() error {
	if DB == nil {
		return fmt.Errorf("数据库未初始化")
	}

	created := 0
	for _, s := range seedSituations {
		var count int64
		if err := DB.Model(&models.Situation{}).
			Where("text = ?", s.Text).
			Count(&count).Error; err != nil {
			return fmt.Errorf("检查情境是否存在失败: %w", err)
		}
		if count > 0 {
			continue
		}

		situation := s
		if err := DB.Create(&situation).Error; err != nil {
			return fmt.Errorf("创建种子情境失败: %w", err)
		}
		created++
	}

	logger.Info("情境种子数据就绪",
		zap.Int("created", created),
		zap.Int("total", len(seedSituations)),
	)
	return nil
}
