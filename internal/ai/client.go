package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Abdu-Alim/Death-by-AI/internal/config"
	apperrors "github.com/Abdu-Alim/Death-by-AI/internal/errors"
	"github.com/Abdu-Alim/Death-by-AI/internal/logger"
	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"go.uber.org/zap"
)

// PlaceholderAPIKey 未配置真实密钥时的占位值，视同未配置
const PlaceholderAPIKey = "your_deepseek_api_key_here"

// Evaluation 计划评估结果
type Evaluation struct {
	Survived bool   `json:"survived"`
	Feedback string `json:"feedback"`
}

// Client 文本生成服务客户端接口
type Client interface {
	// GenerateSituation 生成指定分类的情境文本
	GenerateSituation(ctx context.Context, category models.Category) (string, error)
	// EvaluatePlan 评估玩家的生存计划
	EvaluatePlan(ctx context.Context, situationText, plan string) (*Evaluation, error)
}

// generationTemperature 情境生成固定使用较高温度保证多样性，
// 配置中的温度只作用于计划评估。
const generationTemperature = 0.8

// chatClient DeepSeek 兼容的 chat-completions 客户端
type chatClient struct {
	apiKey      string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient 创建文本生成服务客户端
func NewClient(cfg *config.AIConfig, log *zap.Logger) Client {
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.3
	}
	return &chatClient{
		apiKey:      cfg.APIKey,
		apiURL:      cfg.APIURL,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: log,
	}
}

// chatMessage chat-completions 消息
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest chat-completions 请求体
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// chatResponse chat-completions 响应体
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateSituation 生成指定分类的情境文本
func (c *chatClient) GenerateSituation(ctx context.Context, category models.Category) (string, error) {
	if err := c.checkKey(); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Create a unique and challenging life-threatening situation in the "%s" category.
The situation must be realistic (unless the category is fantasy) and require a well-thought-out survival plan from the player.
Describe the situation briefly but in detail, 2-3 sentences.
Category: %s

Return ONLY the situation text, without any extra commentary.`, category, category)

	content, err := c.complete(ctx, "generate_situation", chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a creator of challenging and engaging survival game scenarios."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: generationTemperature,
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(content)
	if text == "" {
		return "", apperrors.New(apperrors.ErrAIBadResponse, "生成的情境文本为空")
	}
	return text, nil
}

// EvaluatePlan 评估玩家的生存计划
//
// 要求模型以 JSON 返回判定，解析失败视为响应格式错误。
func (c *chatClient) EvaluatePlan(ctx context.Context, situationText, plan string) (*Evaluation, error) {
	if err := c.checkKey(); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`You are an expert in surviving extreme situations. Evaluate the player's plan and decide whether they survive.

SITUATION: %s
PLAYER'S PLAN: %s

Analyze the plan against these criteria:
1. Logic and feasibility
2. Use of available resources and conditions
3. Dangers the player did not account for
4. Alternative courses of action

Return the answer as JSON:
{
    "survived": true/false,
    "feedback": "detailed feedback explaining the verdict, 2-3 sentences"
}

Be strict but fair. Real survival odds in such situations are usually low.`, situationText, plan)

	content, err := c.complete(ctx, "evaluate_plan", chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a strict survival expert. Judge realistically."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   300,
		Temperature: c.temperature,
	})
	if err != nil {
		return nil, err
	}

	var eval Evaluation
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &eval); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrAIBadResponse, "评估响应不是有效的JSON")
	}
	if eval.Feedback == "" {
		return nil, apperrors.New(apperrors.ErrAIBadResponse, "评估响应缺少反馈文本")
	}
	return &eval, nil
}

// checkKey 校验密钥是否可用
func (c *chatClient) checkKey() error {
	if c.apiKey == "" || c.apiKey == PlaceholderAPIKey {
		return apperrors.New(apperrors.ErrAIMissingKey, "未配置API密钥")
	}
	return nil
}

// complete 发送 chat-completions 请求并返回首个消息内容
func (c *chatClient) complete(ctx context.Context, operation string, reqBody chatRequest) (string, error) {
	start := time.Now()
	c.logger.Debug("AI request",
		zap.String("operation", operation),
		zap.String("model", reqBody.Model),
	)

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrUnknown, "序列化请求失败")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrUnknown, "构建请求失败")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.LogAIRequest(operation, time.Since(start), err)
		return "", apperrors.Wrap(err, apperrors.ErrAIUnavailable, "请求文本生成服务失败")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := apperrors.Newf(apperrors.ErrAIUnavailable, "文本生成服务返回 %d: %s", resp.StatusCode, string(body))
		logger.LogAIRequest(operation, time.Since(start), err)
		return "", err
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		logger.LogAIRequest(operation, time.Since(start), err)
		return "", apperrors.Wrap(err, apperrors.ErrAIBadResponse, "解析响应失败")
	}
	if len(chatResp.Choices) == 0 {
		err := apperrors.New(apperrors.ErrAIBadResponse, "响应不包含choices")
		logger.LogAIRequest(operation, time.Since(start), err)
		return "", err
	}

	logger.LogAIRequest(operation, time.Since(start), nil)
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// stripCodeFence 去除模型偶尔包裹的 Markdown 代码块
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
