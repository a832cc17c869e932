package game

import (
	"fmt"
	"strings"

	"github.com/Abdu-Alim/Death-by-AI/internal/config"
	"github.com/Abdu-Alim/Death-by-AI/internal/models"
)

// 分类指示词：按 灾难 > 奇幻 > 自然 的固定优先级扫描情境文本。
// 优先级固定是因为指示词可能跨分类重叠（如 fire 既出现在灾难也出现在自然场景）。
var categoryIndicators = []struct {
	category models.Category
	terms    []string
}{
	{models.CategoryDisaster, []string{
		"earthquake", "flood", "fire", "explosion", "collapse",
		"nuclear", "evacuat", "smoke", "crash", "tsunami",
	}},
	{models.CategoryFantasy, []string{
		"magic", "portal", "dragon", "spell", "dimension",
		"curse", "wizard", "alien", "wish", "telepath",
	}},
	{models.CategoryNature, []string{
		"forest", "cave", "island", "mountain", "bear",
		"jungle", "desert", "storm", "river", "wolf",
	}},
}

// positiveKeywords 各分类的加分关键词
var positiveKeywords = map[models.Category][]string{
	models.CategoryNature: {
		"shelter", "fire", "water", "food", "signal", "rope", "calm",
	},
	models.CategoryDisaster: {
		"evacuate", "exit", "stairs", "mask", "radio", "supplies", "calm",
	},
	models.CategoryFantasy: {
		"spell", "ritual", "artifact", "negotiate", "observe", "rules",
	},
}

// negativeKeywords 扣分关键词，各分类共用
var negativeKeywords = []string{
	"panic", "give up", "scream", "freeze", "cry", "no idea",
}

// planningKeywords 规划用语，命中任意一个记一次规划加分
var planningKeywords = []string{
	"plan", "first", "then", "strategy", "carefully", "step",
}

// Result 计划评估结果
type Result struct {
	Survived bool   `json:"survived"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Classify 根据情境文本推断分类
//
// 按固定优先级逐分类扫描指示词，无命中时默认自然分类。
func Classify(situationText string) models.Category {
	lower := strings.ToLower(situationText)
	for _, ind := range categoryIndicators {
		for _, term := range ind.terms {
			if strings.Contains(lower, term) {
				return ind.category
			}
		}
	}
	return models.CategoryNature
}

// Evaluator 确定性关键词评估器
//
// 同样的输入总是产生同样的判定与反馈。
type Evaluator struct {
	threshold   int
	lengthBonus int
}

// NewEvaluator 创建确定性评估器
func NewEvaluator(cfg *config.GameConfig) *Evaluator {
	threshold := cfg.SurvivalThreshold
	if threshold <= 0 {
		threshold = 3
	}
	lengthBonus := cfg.LengthBonusChars
	if lengthBonus <= 0 {
		lengthBonus = 100
	}
	return &Evaluator{
		threshold:   threshold,
		lengthBonus: lengthBonus,
	}
}

// Evaluate 评估生存计划
//
// 计分规则：分类加分词每次出现 +2，扣分词每次出现 -3，
// 长度超过阈值 +1，包含规划用语 +1；总分达到阈值判定为存活。
func (e *Evaluator) Evaluate(situationText, plan string) *Result {
	plan = strings.TrimSpace(plan)
	if plan == "" {
		return &Result{
			Survived: false,
			Score:    0,
			Feedback: "You did nothing. The situation resolved itself, and not in your favor.",
		}
	}

	category := Classify(situationText)
	lower := strings.ToLower(plan)

	score := 0
	var positiveNotes []string
	var negativeNotes []string

	for _, word := range positiveKeywords[category] {
		if n := strings.Count(lower, word); n > 0 {
			score += 2 * n
			positiveNotes = append(positiveNotes, fmt.Sprintf("[+] Good thinking: %q", word))
		}
	}
	for _, word := range negativeKeywords {
		if n := strings.Count(lower, word); n > 0 {
			score -= 3 * n
			negativeNotes = append(negativeNotes, fmt.Sprintf("[-] Fatal instinct: %q", word))
		}
	}

	if len(plan) > e.lengthBonus {
		score++
	}
	for _, word := range planningKeywords {
		if strings.Contains(lower, word) {
			score++
			break
		}
	}

	survived := score >= e.threshold

	var sb strings.Builder
	if survived {
		sb.WriteString("You survived. Your plan held together when it mattered.")
	} else {
		sb.WriteString("You died. The plan fell apart under pressure.")
	}
	if len(positiveNotes) == 0 && len(negativeNotes) == 0 {
		sb.WriteString(" Your plan was too vague to change the odds either way.")
	} else {
		for _, note := range positiveNotes {
			sb.WriteString("\n")
			sb.WriteString(note)
		}
		for _, note := range negativeNotes {
			sb.WriteString("\n")
			sb.WriteString(note)
		}
	}

	return &Result{
		Survived: survived,
		Score:    score,
		Feedback: sb.String(),
	}
}
