package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/Abdu-Alim/Death-by-AI/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.FatalLevel, parseLevel("fatal"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
}

func TestInitAndHelpers(t *testing.T) {
	cfg := &config.LogConfig{
		Level:  "debug",
		Format: "console",
		Output: "stdout",
		Modules: map[string]string{
			"game": "debug",
		},
	}
	require.NoError(t, Init(cfg))

	assert.NotNil(t, GetLogger())
	assert.NotNil(t, GetSugar())
	assert.NotNil(t, GetModuleLogger("game"))
	// 未注册的模块退回默认日志器
	assert.NotNil(t, GetModuleLogger("missing"))

	// 事件辅助函数在已初始化和带错误的分支都不应panic
	LogRoundEvent("round_resolved", 1, map[string]interface{}{
		"survived": true,
		"score":    1,
	})
	LogAIRequest("evaluate_plan", 5*time.Millisecond, nil)
	LogAIRequest("evaluate_plan", 5*time.Millisecond, errors.New("connection refused"))
	LogRequest("POST", "/api/v1/sessions", 201, time.Millisecond, "127.0.0.1")
	LogError(errors.New("boom"), "operation failed")
}
