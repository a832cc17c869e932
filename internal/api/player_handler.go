package api

import (
	"net/http"
	"strconv"

	"github.com/Abdu-Alim/Death-by-AI/internal/repository"
	"github.com/Abdu-Alim/Death-by-AI/internal/service"
	"github.com/gin-gonic/gin"
)

// PlayerHandler 玩家处理器
type PlayerHandler struct {
	playerService service.PlayerService
}

// NewPlayerHandler 创建玩家处理器
func NewPlayerHandler(playerService service.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
	}
}

// CreatePlayerRequest 创建玩家请求
type CreatePlayerRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreatePlayer 创建玩家
// @Summary 创建玩家
// @Description 名称大小写不敏感，已存在时返回既有玩家
// @Tags Player
// @Accept json
// @Produce json
// @Param request body CreatePlayerRequest true "玩家信息"
// @Success 201 {object} models.Player
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	player, err := h.playerService.CreatePlayer(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, player)
}

// GetPlayer 查询玩家
// @Summary 根据名称查询玩家
// @Tags Player
// @Produce json
// @Param name path string true "玩家名称"
// @Success 200 {object} models.Player
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/players/{name} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	player, err := h.playerService.GetPlayerByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

// GetPlayerSessions 查询玩家会话历史
// @Summary 查询玩家会话历史（分页）
// @Tags Player
// @Produce json
// @Param name path string true "玩家名称"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/players/{name}/sessions [get]
func (h *PlayerHandler) GetPlayerSessions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	pagination := repository.NewPagination(page, pageSize)

	sessions, err := h.playerService.GetPlayerSessions(c.Request.Context(), c.Param("name"), pagination)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessions":   sessions,
		"pagination": pagination,
	})
}
