package game

import (
	"math/rand"

	"github.com/Abdu-Alim/Death-by-AI/internal/models"
)

// fallbackSituations 文本生成服务不可用时的备用情境
var fallbackSituations = map[models.Category][]string{
	models.CategoryNature: {
		"You are lost in a deep cave. Your flashlight is dying and you do not remember the way back.",
		"A storm has wrecked your boat on an uninhabited island. No radio, food for two days.",
		"You have met a grizzly bear in the forest. The bear has noticed you and is starting to approach.",
	},
	models.CategoryDisaster: {
		"A fire has broken out in a skyscraper. You are on the 25th floor, the elevators are dead and the stairwell is full of smoke.",
		"There has been an accident at the nuclear power plant. Evacuation is announced, but every road out is jammed.",
		"A flood has swallowed the city. You are on a rooftop, the water keeps rising and no help is in sight.",
	},
	models.CategoryFantasy: {
		"You discovered you can read minds. Now other people's thoughts will not let you concentrate.",
		"You were given a ring that grants wishes, but every wish comes with a random side effect.",
		"You are in a world where technology fails and magic is real, but you are the only one without magical abilities.",
	},
}

// FallbackSituation 随机返回指定分类的备用情境
//
// 未知分类退回自然分类。
func FallbackSituation(rng *rand.Rand, category models.Category) string {
	texts, ok := fallbackSituations[category]
	if !ok {
		texts = fallbackSituations[models.CategoryNature]
	}
	return texts[rng.Intn(len(texts))]
}
