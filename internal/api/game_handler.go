package api

import (
	"net/http"
	"strconv"

	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"github.com/Abdu-Alim/Death-by-AI/internal/service"
	"github.com/gin-gonic/gin"
)

// GameHandler 游戏会话处理器
type GameHandler struct {
	gameService service.GameService
}

// NewGameHandler 创建游戏会话处理器
func NewGameHandler(gameService service.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// StartSessionRequest 开局请求
type StartSessionRequest struct {
	PlayerName string          `json:"player_name" binding:"required"`
	Category   models.Category `json:"category"`
}

// SubmitPlanRequest 计划提交请求
type SubmitPlanRequest struct {
	Plan string `json:"plan"`
}

// parseSessionID 解析路径中的会话ID
func parseSessionID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, err)
		return 0, false
	}
	return uint(id), true
}

// StartSession 开启新会话
// @Summary 开启新游戏会话
// @Description 为玩家开启新会话并下发情境，既有活跃会话会被结束
// @Tags Game
// @Accept json
// @Produce json
// @Param request body StartSessionRequest true "开局信息"
// @Success 201 {object} models.GameSession
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/sessions [post]
func (h *GameHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	session, err := h.gameService.StartSession(c.Request.Context(), req.PlayerName, req.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSession 查询会话
// @Summary 查询游戏会话
// @Tags Game
// @Produce json
// @Param id path int true "会话ID"
// @Success 200 {object} models.GameSession
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *GameHandler) GetSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, err := h.gameService.GetSession(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SubmitPlan 提交生存计划
// @Summary 提交生存计划
// @Description 评估计划并结算一轮：存活加分，死亡扣生命，生命耗尽会话结束
// @Tags Game
// @Accept json
// @Produce json
// @Param id path int true "会话ID"
// @Param request body SubmitPlanRequest true "生存计划"
// @Success 200 {object} service.RoundResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/sessions/{id}/plan [post]
func (h *GameHandler) SubmitPlan(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req SubmitPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.gameService.SubmitPlan(c.Request.Context(), id, req.Plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdvanceSituation 更换情境
// @Summary 为活跃会话更换情境
// @Tags Game
// @Produce json
// @Param id path int true "会话ID"
// @Success 200 {object} models.Situation
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/sessions/{id}/advance [post]
func (h *GameHandler) AdvanceSituation(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	situation, err := h.gameService.AdvanceSituation(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, situation)
}

// EndSession 结束会话
// @Summary 主动结束会话
// @Description 已结束的会话原样返回，重复调用幂等
// @Tags Game
// @Produce json
// @Param id path int true "会话ID"
// @Success 200 {object} models.GameSession
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id}/end [post]
func (h *GameHandler) EndSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, err := h.gameService.EndSession(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// ListActions 查询会话行动记录
// @Summary 查询会话的行动记录
// @Tags Game
// @Produce json
// @Param id path int true "会话ID"
// @Success 200 {array} models.PlayerAction
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id}/actions [get]
func (h *GameHandler) ListActions(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	actions, err := h.gameService.ListActions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, actions)
}
