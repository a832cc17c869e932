package game

import (
	"math/rand"
	"strings"
)

// 叙事模板片段，按判定结果随机组合
var (
	survivalOpeners = []string{
		"Against the odds, you made it out alive.",
		"Hours later, rescuers found you exhausted but breathing.",
		"Your plan worked better than you dared to hope.",
	}
	survivalDetails = []string{
		"The preparation you made bought you exactly the time you needed.",
		"One decision made early turned out to be the one that saved you.",
		"You kept your head while everything around you fell apart.",
	}
	deathOpeners = []string{
		"It was over faster than you expected.",
		"For a moment it seemed the plan might work. It did not.",
		"The situation gave you one chance, and the plan missed it.",
	}
	deathDetails = []string{
		"Whatever you overlooked was precisely the thing that killed you.",
		"The danger you dismissed as secondary proved to be the main one.",
		"Your last thought was that the plan had sounded so much better out loud.",
	}
)

// StoryEvaluator 概率型评估器
//
// 生存概率由确定性评分推出并夹在 [0.05, 0.8] 区间，
// 判定按该概率随机抽取，随机源注入以便测试固定结果。
type StoryEvaluator struct {
	base *Evaluator
	rng  *rand.Rand
}

// NewStoryEvaluator 创建概率型评估器
func NewStoryEvaluator(base *Evaluator, rng *rand.Rand) *StoryEvaluator {
	return &StoryEvaluator{
		base: base,
		rng:  rng,
	}
}

// SurvivalChance 由关键词评分推出生存概率
func (s *StoryEvaluator) SurvivalChance(situationText, plan string) float64 {
	scored := s.base.Evaluate(situationText, plan)
	chance := 0.2 + 0.08*float64(scored.Score)
	if chance < 0.05 {
		chance = 0.05
	}
	if chance > 0.8 {
		chance = 0.8
	}
	return chance
}

// Evaluate 按生存概率随机判定并合成叙事反馈
func (s *StoryEvaluator) Evaluate(situationText, plan string) *Result {
	scored := s.base.Evaluate(situationText, plan)
	if strings.TrimSpace(plan) == "" {
		return scored
	}

	chance := s.SurvivalChance(situationText, plan)
	survived := s.rng.Float64() < chance

	var opener, detail string
	if survived {
		opener = survivalOpeners[s.rng.Intn(len(survivalOpeners))]
		detail = survivalDetails[s.rng.Intn(len(survivalDetails))]
	} else {
		opener = deathOpeners[s.rng.Intn(len(deathOpeners))]
		detail = deathDetails[s.rng.Intn(len(deathDetails))]
	}

	return &Result{
		Survived: survived,
		Score:    scored.Score,
		Feedback: opener + " " + detail,
	}
}
