package planner

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

//
// --------------------------------------------------
// GET /planning/weekly-meal-plan?days=&meals_per_day=
// --------------------------------------------------
//

func (h *Handler) WeeklyPlan(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	mealsPerDay, _ := strconv.Atoi(c.DefaultQuery("meals_per_day", "2"))

	plan, err := h.service.SuggestWeeklyPlan(c.Request.Context(), days, mealsPerDay)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, plan)
}
