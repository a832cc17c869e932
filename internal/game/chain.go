package game

import (
	"context"
	"math/rand"

	"github.com/Abdu-Alim/Death-by-AI/internal/ai"
	apperrors "github.com/Abdu-Alim/Death-by-AI/internal/errors"
	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"go.uber.org/zap"
)

// 判定来源
const (
	SourceAI    = "ai"
	SourceLocal = "local"
)

// Outcome 一轮评估的最终结果
type Outcome struct {
	Survived bool   `json:"survived"`
	Feedback string `json:"feedback"`
	Source   string `json:"source"`
}

// Chain 评估链：优先调用文本生成服务，失败时静默降级到本地评估器。
//
// 对调用方而言评估永不失败，服务故障只体现在 Source 字段和日志里。
type Chain struct {
	client    ai.Client
	evaluator *Evaluator
	story     *StoryEvaluator
	storyMode bool
	rng       *rand.Rand
	logger    *zap.Logger
}

// NewChain 创建评估链
//
// storyMode 为真时本地降级使用概率型评估器，否则使用确定性评估器。
func NewChain(client ai.Client, evaluator *Evaluator, story *StoryEvaluator, storyMode bool, rng *rand.Rand, log *zap.Logger) *Chain {
	return &Chain{
		client:    client,
		evaluator: evaluator,
		story:     story,
		storyMode: storyMode,
		rng:       rng,
		logger:    log,
	}
}

// EvaluatePlan 评估生存计划
//
// 服务端的传输错误、非2xx、响应格式错误和凭证缺失一律降级，不向上抛出。
func (c *Chain) EvaluatePlan(ctx context.Context, situationText, plan string) *Outcome {
	if c.client != nil {
		eval, err := c.client.EvaluatePlan(ctx, situationText, plan)
		if err == nil {
			return &Outcome{
				Survived: eval.Survived,
				Feedback: eval.Feedback,
				Source:   SourceAI,
			}
		}
		if !apperrors.IsAIFallback(err) {
			// 非降级类错误同样吞掉，评估必须给出结果
			c.logger.Warn("unexpected AI evaluation error, falling back",
				zap.Error(err),
			)
		} else {
			c.logger.Debug("AI evaluation unavailable, falling back",
				zap.Error(err),
			)
		}
	}

	var result *Result
	if c.storyMode && c.story != nil {
		result = c.story.Evaluate(situationText, plan)
	} else {
		result = c.evaluator.Evaluate(situationText, plan)
	}
	return &Outcome{
		Survived: result.Survived,
		Feedback: result.Feedback,
		Source:   SourceLocal,
	}
}

// GenerateSituation 生成情境文本
//
// 服务不可用时返回备用情境，同样不向上抛出错误。
func (c *Chain) GenerateSituation(ctx context.Context, category models.Category) (string, string) {
	if c.client != nil {
		text, err := c.client.GenerateSituation(ctx, category)
		if err == nil {
			return text, SourceAI
		}
		c.logger.Debug("AI situation generation unavailable, falling back",
			zap.Error(err),
		)
	}
	return FallbackSituation(c.rng, category), SourceLocal
}
