package api

import (
	"net/http"
	"strconv"

	"github.com/Abdu-Alim/Death-by-AI/internal/models"
	"github.com/Abdu-Alim/Death-by-AI/internal/repository"
	"github.com/Abdu-Alim/Death-by-AI/internal/service"
	"github.com/gin-gonic/gin"
)

// SituationHandler 情境处理器
type SituationHandler struct {
	situationService service.SituationService
}

// NewSituationHandler 创建情境处理器
func NewSituationHandler(situationService service.SituationService) *SituationHandler {
	return &SituationHandler{
		situationService: situationService,
	}
}

// CreateSituationRequest 自定义情境请求
type CreateSituationRequest struct {
	Text        string          `json:"text" binding:"required"`
	Category    models.Category `json:"category" binding:"required"`
	CreatorName string          `json:"creator_name"`
}

// GenerateSituationRequest 情境生成请求
type GenerateSituationRequest struct {
	Category models.Category `json:"category" binding:"required"`
}

// GenerateSituationResponse 情境生成响应
type GenerateSituationResponse struct {
	Situation *models.Situation `json:"situation"`
	Source    string            `json:"source"`
}

// CreateSituation 创建自定义情境
// @Summary 创建玩家自定义情境
// @Tags Situation
// @Accept json
// @Produce json
// @Param request body CreateSituationRequest true "情境内容"
// @Success 201 {object} models.Situation
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/situations [post]
func (h *SituationHandler) CreateSituation(c *gin.Context) {
	var req CreateSituationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	situation, err := h.situationService.CreateUserSituation(c.Request.Context(), req.Text, req.Category, req.CreatorName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, situation)
}

// GenerateSituation 生成情境
// @Summary 生成一条情境
// @Description 调用文本生成服务，服务不可用时静默使用备用情境
// @Tags Situation
// @Accept json
// @Produce json
// @Param request body GenerateSituationRequest true "生成参数"
// @Success 201 {object} GenerateSituationResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/situations/generate [post]
func (h *SituationHandler) GenerateSituation(c *gin.Context) {
	var req GenerateSituationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	situation, source, err := h.situationService.GenerateSituation(c.Request.Context(), req.Category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, GenerateSituationResponse{
		Situation: situation,
		Source:    source,
	})
}

// ListSituations 查询情境列表
// @Summary 查询情境列表（分页）
// @Tags Situation
// @Produce json
// @Param category query string false "分类过滤"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/situations [get]
func (h *SituationHandler) ListSituations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	pagination := repository.NewPagination(page, pageSize)

	category := models.Category(c.Query("category"))
	situations, err := h.situationService.ListSituations(c.Request.Context(), category, pagination)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"situations": situations,
		"pagination": pagination,
	})
}
