package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ErrorsTestSuite 错误包测试套件
type ErrorsTestSuite struct {
	suite.Suite
}

// 测试创建新错误
func (suite *ErrorsTestSuite) TestNew() {
	// 测试基本错误创建
	err := New(ErrInvalidParam)
	suite.NotNil(err)
	suite.Equal(ErrInvalidParam, err.Code)
	suite.Equal("无效的参数", err.Message)
	suite.Empty(err.Details)

	// 测试带详情的错误
	err = New(ErrSessionNotFound, "会话ID: 42")
	suite.NotNil(err)
	suite.Equal(ErrSessionNotFound, err.Code)
	suite.Equal("游戏会话不存在", err.Message)
	suite.Equal("会话ID: 42", err.Details)

	// 测试多个详情
	err = New(ErrDatabaseConnect, "连接失败", "驱动: sqlite")
	suite.Equal("连接失败; 驱动: sqlite", err.Details)
}

// 测试格式化错误创建
func (suite *ErrorsTestSuite) TestNewf() {
	err := Newf(ErrInvalidCategory, "分类 %q 不在允许范围内", "horror")
	suite.NotNil(err)
	suite.Equal(ErrInvalidCategory, err.Code)
	suite.Equal(`分类 "horror" 不在允许范围内`, err.Details)
}

// 测试错误包装
func (suite *ErrorsTestSuite) TestWrap() {
	// 包装标准错误
	originalErr := errors.New("原始错误")
	wrappedErr := Wrap(originalErr, ErrDatabaseQuery)
	suite.NotNil(wrappedErr)
	suite.Equal(ErrDatabaseQuery, wrappedErr.Code)
	suite.Equal("原始错误", wrappedErr.Details)
	suite.Equal(originalErr, wrappedErr.Cause)

	// 包装nil错误
	nilErr := Wrap(nil, ErrUnknown)
	suite.Nil(nilErr)

	// 包装已有的AppError
	appErr := New(ErrSessionEnded, "会话已结束")
	wrappedAppErr := Wrap(appErr, ErrInvalidParam, "额外信息")
	suite.Equal(ErrSessionEnded, wrappedAppErr.Code) // 保留原始错误码
	suite.Contains(wrappedAppErr.Details, "额外信息")
}

// 测试格式化错误包装
func (suite *ErrorsTestSuite) TestWrapf() {
	originalErr := errors.New("连接超时")
	wrappedErr := Wrapf(originalErr, ErrAIUnavailable, "服务 %s 调用失败", "deepseek")
	suite.NotNil(wrappedErr)
	suite.Equal(ErrAIUnavailable, wrappedErr.Code)
	suite.Equal("服务 deepseek 调用失败", wrappedErr.Details)
	suite.Equal(originalErr, wrappedErr.Cause)
}

// 测试错误码判断
func (suite *ErrorsTestSuite) TestIs() {
	err := New(ErrSessionEnded)
	suite.True(Is(err, ErrSessionEnded))
	suite.False(Is(err, ErrNotFound))
	suite.False(Is(nil, ErrSessionEnded))

	// 测试标准错误
	standardErr := errors.New("标准错误")
	suite.False(Is(standardErr, ErrUnknown))
}

// 测试获取错误码
func (suite *ErrorsTestSuite) TestGetCode() {
	// AppError
	appErr := New(ErrEmptyPlan)
	suite.Equal(ErrEmptyPlan, GetCode(appErr))

	// 标准错误
	standardErr := errors.New("标准错误")
	suite.Equal(ErrUnknown, GetCode(standardErr))

	// nil错误
	suite.Equal(ErrorCode(0), GetCode(nil))
}

// 测试错误消息
func (suite *ErrorsTestSuite) TestError() {
	// 只有消息
	err := &AppError{
		Code:    ErrNotFound,
		Message: "资源未找到",
	}
	suite.Equal("[1002] 资源未找到", err.Error())

	// 有详情
	err.Details = "会话ID: 123"
	suite.Equal("[1002] 资源未找到: 会话ID: 123", err.Error())
}

// 测试Unwrap
func (suite *ErrorsTestSuite) TestUnwrap() {
	originalErr := errors.New("原始错误")
	wrappedErr := Wrap(originalErr, ErrUnknown)
	suite.Equal(originalErr, wrappedErr.Unwrap())
}

// 测试HTTP状态码映射
func (suite *ErrorsTestSuite) TestHTTPStatus() {
	suite.Equal(400, New(ErrInvalidParam).HTTPStatus())
	suite.Equal(400, New(ErrEmptyPlan).HTTPStatus())
	suite.Equal(400, New(ErrInvalidCategory).HTTPStatus())
	suite.Equal(404, New(ErrSessionNotFound).HTTPStatus())
	suite.Equal(404, New(ErrPlayerNotFound).HTTPStatus())
	suite.Equal(409, New(ErrSessionEnded).HTTPStatus())
	suite.Equal(503, New(ErrTransaction).HTTPStatus())
	suite.Equal(500, New(ErrUnknown).HTTPStatus())
}

// 测试AI回退判断
func (suite *ErrorsTestSuite) TestIsAIFallback() {
	suite.True(IsAIFallback(New(ErrAIUnavailable)))
	suite.True(IsAIFallback(New(ErrAIBadResponse)))
	suite.True(IsAIFallback(New(ErrAIMissingKey)))
	suite.True(IsAIFallback(New(ErrTimeout)))
	suite.False(IsAIFallback(New(ErrSessionEnded)))
	suite.False(IsAIFallback(nil))
}

// 测试可重试判断
func (suite *ErrorsTestSuite) TestIsRetryable() {
	suite.True(IsRetryable(New(ErrTimeout)))
	suite.True(IsRetryable(New(ErrAIUnavailable)))
	suite.False(IsRetryable(New(ErrEmptyPlan)))
	suite.False(IsRetryable(nil))
}

// TestErrorsTestSuite 运行测试套件
func TestErrorsTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}
