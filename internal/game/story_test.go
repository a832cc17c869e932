package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoryEvaluator_Reproducible(t *testing.T) {
	base := newTestEvaluator()
	situation := "You are lost in a deep cave."
	plan := "I build a shelter and light a fire."

	first := NewStoryEvaluator(base, rand.New(rand.NewSource(42))).Evaluate(situation, plan)
	second := NewStoryEvaluator(base, rand.New(rand.NewSource(42))).Evaluate(situation, plan)
	assert.Equal(t, first, second)
}

func TestStoryEvaluator_ChanceClamped(t *testing.T) {
	base := newTestEvaluator()
	s := NewStoryEvaluator(base, rand.New(rand.NewSource(1)))

	// 大量扣分词也不会低于下限
	low := s.SurvivalChance("cave", "panic panic panic scream scream cry freeze")
	assert.GreaterOrEqual(t, low, 0.05)

	// 大量加分词也不会超过上限
	high := s.SurvivalChance("cave", "shelter fire water food signal rope calm shelter fire water plan")
	assert.LessOrEqual(t, high, 0.8)
	assert.Equal(t, 0.8, high)
}

func TestStoryEvaluator_FeedbackMatchesVerdict(t *testing.T) {
	base := newTestEvaluator()
	s := NewStoryEvaluator(base, rand.New(rand.NewSource(7)))

	sawSurvived := false
	sawDied := false
	for i := 0; i < 50; i++ {
		result := s.Evaluate("You are lost in a deep cave.", "I build a shelter and stay calm.")
		assert.NotEmpty(t, result.Feedback)
		if result.Survived {
			sawSurvived = true
		} else {
			sawDied = true
		}
	}
	// 概率在 (0,1) 开区间内，足够多次抽样应当两种结果都出现
	assert.True(t, sawSurvived)
	assert.True(t, sawDied)
}

func TestStoryEvaluator_EmptyPlanDeterministic(t *testing.T) {
	base := newTestEvaluator()
	s := NewStoryEvaluator(base, rand.New(rand.NewSource(1)))

	result := s.Evaluate("You are lost in a deep cave.", "   ")
	assert.False(t, result.Survived)
}
