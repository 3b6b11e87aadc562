package shopping

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"epicerie/internal/ingredient"
	"epicerie/internal/units"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// itemView is the presentation shape of one line: quantities are
// rounded to 2 decimal places here and nowhere earlier.
type itemView struct {
	IngredientID   string     `json:"ingredient_id"`
	IngredientName string     `json:"ingredient_name"`
	Quantity       string     `json:"quantity"`
	Unit           units.Unit `json:"unit"`
	RecipeIDs      []string   `json:"recipe_ids"`
	Checked        bool       `json:"checked"`
}

type categoryView struct {
	Category ingredient.Category `json:"category"`
	Items    []itemView          `json:"items"`
}

func listResponse(list *ShoppingList) gin.H {
	categories := make([]categoryView, 0, len(ingredient.Categories()))

	for _, category := range ingredient.Categories() {
		view := categoryView{Category: category, Items: []itemView{}}
		for _, line := range list.Lines {
			if line.Category != category {
				continue
			}
			view.Items = append(view.Items, itemView{
				IngredientID:   line.IngredientID,
				IngredientName: line.IngredientName,
				Quantity:       line.Quantity.StringFixed(2),
				Unit:           line.Unit,
				RecipeIDs:      line.RecipeIDs,
				Checked:        line.Checked,
			})
		}
		if len(view.Items) > 0 {
			categories = append(categories, view)
		}
	}

	warnings := list.Warnings
	if warnings == nil {
		warnings = []UnitFamilyConflict{}
	}

	return gin.H{
		"id":          list.ID,
		"name":        list.Name,
		"created_at":  list.CreatedAt,
		"updated_at":  list.UpdatedAt,
		"categories":  categories,
		"warnings":    warnings,
		"total_items": len(list.Lines),
	}
}

//
// --------------------------------------------------
// POST /shopping
// --------------------------------------------------
//

func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	list, err := h.service.CreateEmpty(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, listResponse(list))
}

//
// --------------------------------------------------
// GET /shopping?skip=&limit=
// --------------------------------------------------
//

func (h *Handler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	lists, err := h.service.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if lists == nil {
		lists = []*ShoppingList{}
	}
	c.JSON(http.StatusOK, lists)
}

//
// --------------------------------------------------
// GET /shopping/:id
// --------------------------------------------------
//

func (h *Handler) Get(c *gin.Context) {
	list, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shopping list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listResponse(list))
}

//
// --------------------------------------------------
// DELETE /shopping/:id
// --------------------------------------------------
//

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shopping list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

//
// --------------------------------------------------
// POST /shopping/from-recipes
// --------------------------------------------------
//

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	list, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		c.JSON(generationStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, listResponse(list))
}

//
// --------------------------------------------------
// PUT /shopping/:id/from-recipes
// --------------------------------------------------
//

func (h *Handler) Regenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	list, err := h.service.Regenerate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(generationStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, listResponse(list))
}

func generationStatus(err error) int {
	switch {
	case errors.Is(err, ErrListNotFound),
		errors.Is(err, ErrUnknownRecipe),
		errors.Is(err, ErrUnknownIngredient):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidMultiplier):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

//
// --------------------------------------------------
// PATCH /shopping/:id/items/:ingredient_id/check?unit=
// --------------------------------------------------
//

func (h *Handler) ToggleItem(c *gin.Context) {
	checked, err := h.service.ToggleItem(
		c.Request.Context(),
		c.Param("id"),
		c.Param("ingredient_id"),
		c.Query("unit"),
	)
	if err != nil {
		if errors.Is(err, ErrLineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found in this list"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "checked": checked})
}

//
// --------------------------------------------------
// GET /shopping/:id/estimate-cost
// --------------------------------------------------
//

func (h *Handler) EstimateCost(c *gin.Context) {
	estimate, err := h.service.EstimateCost(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shopping list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	perCategory := make(map[ingredient.Category]string, len(estimate.PerCategory))
	for category, total := range estimate.PerCategory {
		perCategory[category] = total.StringFixed(2)
	}

	unresolved := estimate.Unresolved
	if unresolved == nil {
		unresolved = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"per_category":              perCategory,
		"grand_total":               estimate.GrandTotal.StringFixed(2),
		"currency":                  estimate.Currency,
		"unresolved_ingredient_ids": unresolved,
		"partial":                   estimate.Partial(),
	})
}

//
// --------------------------------------------------
// POST /shopping/:id/export
// --------------------------------------------------
//

func (h *Handler) Export(c *gin.Context) {
	url, err := h.service.ExportCSV(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrListNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shopping list not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
