package delivery

import (
	"net/http"

	prddto "genprd-backend/internal/prd/dto"
	"genprd-backend/internal/prd/usecase"
	"genprd-backend/pkg/apperror"
	"genprd-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PRDHandler struct {
	prdUsecase usecase.PRDUsecase
}

func NewPRDHandler(prdUsecase usecase.PRDUsecase) *PRDHandler {
	return &PRDHandler{prdUsecase: prdUsecase}
}

func (h *PRDHandler) List(c *gin.Context) {
	filter := &prddto.ListPRDFilter{Stage: c.Query("stage")}
	prds, err := h.prdUsecase.List(c.GetString("userID"), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": prds})
}

func (h *PRDHandler) Recent(c *gin.Context) {
	prds, err := h.prdUsecase.Recent(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": prds})
}

func (h *PRDHandler) Get(c *gin.Context) {
	prd, err := h.prdUsecase.Get(c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": prd})
}

func (h *PRDHandler) Create(c *gin.Context) {
	var req prddto.CreatePRDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": apperror.ErrValidation.Error()})
		return
	}

	prd, err := h.prdUsecase.Create(c.Request.Context(), c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": prd})
}

func (h *PRDHandler) Update(c *gin.Context) {
	var req prddto.UpdatePRDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": apperror.ErrValidation.Error()})
		return
	}

	prd, err := h.prdUsecase.Update(c.GetString("userID"), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": prd})
}

func (h *PRDHandler) Delete(c *gin.Context) {
	if err := h.prdUsecase.Delete(c.GetString("userID"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "PRD deleted"})
}

func (h *PRDHandler) Archive(c *gin.Context) {
	prd, err := h.prdUsecase.Archive(c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": prd})
}

func (h *PRDHandler) TogglePin(c *gin.Context) {
	prd, err := h.prdUsecase.TogglePin(c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": prd})
}

func (h *PRDHandler) UpdateStage(c *gin.Context) {
	var req prddto.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": apperror.ErrValidation.Error()})
		return
	}

	prd, err := h.prdUsecase.UpdateStage(c.GetString("userID"), c.Param("id"), req.DocumentStage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": prd})
}

func (h *PRDHandler) Download(c *gin.Context) {
	url, err := h.prdUsecase.Download(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"download_url": url}})
}

func respondError(c *gin.Context, err error) {
	status := apperror.Status(err)
	if status == http.StatusInternalServerError {
		logger.Log.WithError(err).Error("prd request failed")
	}
	c.JSON(status, gin.H{"status": "error", "message": apperror.Message(err)})
}
