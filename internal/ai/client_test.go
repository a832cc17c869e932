package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abdu-Alim/Death-by-AI/internal/config"
	apperrors "github.com/Abdu-Alim/Death-by-AI/internal/errors"
	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(url string) Client {
	return NewClient(&config.AIConfig{
		APIKey:      "test-key",
		APIURL:      url,
		Model:       "deepseek-chat",
		MaxTokens:   150,
		Temperature: 0.5,
		Timeout:     2 * time.Second,
	}, zap.NewNop())
}

func chatReply(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}},
		},
	}
}

func TestClient_GenerateSituation(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(chatReply("  You are trapped in a collapsing mine shaft.  "))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.GenerateSituation(context.Background(), models.CategoryDisaster)
	require.NoError(t, err)
	assert.Equal(t, "You are trapped in a collapsing mine shaft.", text)

	assert.Equal(t, "deepseek-chat", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[1].Content, "disaster")
	// 情境生成固定使用高温度，不受评估温度配置影响
	assert.Equal(t, generationTemperature, captured.Temperature)
}

func TestClient_EvaluatePlan(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(chatReply(`{"survived": true, "feedback": "Solid plan with clear priorities."}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	eval, err := client.EvaluatePlan(context.Background(), "a fire in a skyscraper", "take the stairs, cover my mouth")
	require.NoError(t, err)
	assert.True(t, eval.Survived)
	assert.Equal(t, "Solid plan with clear priorities.", eval.Feedback)

	// 评估请求使用配置的采样温度
	assert.Equal(t, 0.5, captured.Temperature)
}

func TestClient_EvaluatePlan_CodeFence(t *testing.T) {
	// 模型偶尔会把JSON包在代码块里
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatReply("```json\n{\"survived\": false, \"feedback\": \"The plan ignores the smoke.\"}\n```"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	eval, err := client.EvaluatePlan(context.Background(), "a fire", "run")
	require.NoError(t, err)
	assert.False(t, eval.Survived)
	assert.Equal(t, "The plan ignores the smoke.", eval.Feedback)
}

func TestClient_EvaluatePlan_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatReply("I think the player survives because the plan is good."))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.EvaluatePlan(context.Background(), "situation", "plan")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrAIBadResponse, apperrors.GetCode(err))
	assert.True(t, apperrors.IsAIFallback(err))
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GenerateSituation(context.Background(), models.CategoryNature)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrAIUnavailable, apperrors.GetCode(err))
	assert.True(t, apperrors.IsAIFallback(err))
}

func TestClient_MissingKey(t *testing.T) {
	for _, key := range []string{"", PlaceholderAPIKey} {
		client := NewClient(&config.AIConfig{
			APIKey:  key,
			APIURL:  "http://unused.invalid",
			Model:   "deepseek-chat",
			Timeout: time.Second,
		}, zap.NewNop())

		_, err := client.GenerateSituation(context.Background(), models.CategoryNature)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrAIMissingKey, apperrors.GetCode(err))

		_, err = client.EvaluatePlan(context.Background(), "s", "p")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrAIMissingKey, apperrors.GetCode(err))
	}
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient(&config.AIConfig{
		APIKey:  "test-key",
		APIURL:  "http://127.0.0.1:1",
		Model:   "deepseek-chat",
		Timeout: time.Second,
	}, zap.NewNop())

	_, err := client.GenerateSituation(context.Background(), models.CategoryNature)
	require.Error(t, err)
	assert.True(t, apperrors.IsAIFallback(err))
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}
