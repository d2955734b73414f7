package delivery

import (
	"net/http"

	personneldto "genprd-backend/internal/personnel/dto"
	"genprd-backend/internal/personnel/usecase"
	"genprd-backend/pkg/apperror"
	"genprd-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PersonnelHandler struct {
	personnelUsecase usecase.PersonnelUsecase
}

func NewPersonnelHandler(personnelUsecase usecase.PersonnelUsecase) *PersonnelHandler {
	return &PersonnelHandler{personnelUsecase: personnelUsecase}
}

func (h *PersonnelHandler) List(c *gin.Context) {
	people, err := h.personnelUsecase.List(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": people})
}

func (h *PersonnelHandler) Get(c *gin.Context) {
	p, err := h.personnelUsecase.Get(c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": p})
}

func (h *PersonnelHandler) Create(c *gin.Context) {
	var req personneldto.CreatePersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": apperror.ErrValidation.Error()})
		return
	}

	p, err := h.personnelUsecase.Create(c.GetString("userID"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": p})
}

func (h *PersonnelHandler) Update(c *gin.Context) {
	var req personneldto.UpdatePersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": apperror.ErrValidation.Error()})
		return
	}

	p, err := h.personnelUsecase.Update(c.GetString("userID"), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": p})
}

func (h *PersonnelHandler) Delete(c *gin.Context) {
	if err := h.personnelUsecase.Delete(c.GetString("userID"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "personnel deleted"})
}

func respondError(c *gin.Context, err error) {
	status := apperror.Status(err)
	if status == http.StatusInternalServerError {
		logger.Log.WithError(err).Error("personnel request failed")
	}
	c.JSON(status, gin.H{"status": "error", "message": apperror.Message(err)})
}
