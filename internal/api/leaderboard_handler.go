package api

import (
	"net/http"
	"strconv"

	"github.com/Abdu-Alim/Death-by-AI/internal/service"
	"github.com/gin-gonic/gin"
)

// LeaderboardHandler 排行榜处理器
type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
}

// NewLeaderboardHandler 创建排行榜处理器
func NewLeaderboardHandler(leaderboardService service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Top 查询排行榜
// @Summary 查询排行榜
// @Description 按玩家已结束会话的最高得分排序，得分相同时最近游玩者在前
// @Tags Leaderboard
// @Produce json
// @Param n query int false "榜单长度，默认10，上限100"
// @Success 200 {array} repository.LeaderboardEntry
// @Router /api/v1/leaderboard [get]
func (h *LeaderboardHandler) Top(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", "0"))

	entries, err := h.leaderboardService.Top(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
