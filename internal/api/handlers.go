package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
	apperrors "github.com/vladimiradmaev/lunchlego/internal/errors"
	"github.com/vladimiradmaev/lunchlego/internal/utils"
)

// maxImportBytes bounds snapshot uploads
const maxImportBytes = 10 << 20

const maxSettingBytes = 64 << 10

func (s *Server) listKids(c *gin.Context) {
	kids, err := s.svc.Kids.ListKids(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, kids)
}

func (s *Server) createKid(c *gin.Context) {
	var kid domain.Kid
	if err := c.ShouldBindJSON(&kid); err != nil {
		s.badRequest(c, err)
		return
	}
	created, err := s.svc.Kids.CreateKid(c.Request.Context(), kid)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateKid(c *gin.Context) {
	var kid domain.Kid
	if err := c.ShouldBindJSON(&kid); err != nil {
		s.badRequest(c, err)
		return
	}
	kid.ID = c.Param("id")
	updated, err := s.svc.Kids.UpdateKid(c.Request.Context(), kid)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteKid(c *gin.Context) {
	if err := s.svc.Kids.DeleteKid(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listIngredients serves the whole pantry, or a filtered view when q or category is given
func (s *Server) listIngredients(c *gin.Context) {
	term, category := c.Query("q"), c.Query("category")

	var (
		ingredients []domain.Ingredient
		err         error
	)
	if term == "" && category == "" {
		ingredients, err = s.svc.Pantry.ListIngredients(c.Request.Context())
	} else {
		ingredients, err = s.svc.Pantry.Search(c.Request.Context(), term, category)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (s *Server) createIngredient(c *gin.Context) {
	var ing domain.Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		s.badRequest(c, err)
		return
	}
	created, err := s.svc.Pantry.CreateIngredient(c.Request.Context(), ing)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateIngredient(c *gin.Context) {
	var ing domain.Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		s.badRequest(c, err)
		return
	}
	ing.ID = c.Param("id")
	updated, err := s.svc.Pantry.UpdateIngredient(c.Request.Context(), ing)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteIngredient(c *gin.Context) {
	if err := s.svc.Pantry.DeleteIngredient(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type estimateRequest struct {
	Name     string          `json:"name" binding:"required"`
	Category domain.Category `json:"category"`
}

func (s *Server) estimateNutrition(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	if !req.Category.Valid() {
		s.fail(c, apperrors.NewValidationError(fmt.Sprintf("unknown category %q", req.Category)))
		return
	}
	info, err := s.svc.Estimator.Estimate(c.Request.Context(), req.Name, req.Category)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) expiring(c *gin.Context) {
	at := time.Now()
	if raw := c.Query("date"); raw != "" {
		d, err := utils.ParseDate(raw)
		if err != nil {
			s.fail(c, apperrors.NewValidationError("date must be YYYY-MM-DD"))
			return
		}
		at = d
	}
	report, err := s.svc.Expiration.Check(c.Request.Context(), at)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func pathDate(c *gin.Context) (time.Time, error) {
	d, err := utils.ParseDate(c.Param("date"))
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("date must be YYYY-MM-DD")
	}
	return d, nil
}

func pathCompartment(c *gin.Context) (int, error) {
	n, err := strconv.Atoi(c.Param("compartment"))
	if err != nil {
		return 0, apperrors.NewValidationError("compartment must be a number")
	}
	return n, nil
}

func (s *Server) listLunchBoxes(c *gin.Context) {
	var (
		boxes []domain.LunchBox
		err   error
	)
	if kidID := c.Query("kid"); kidID != "" {
		boxes, err = s.svc.Planner.ListByKid(c.Request.Context(), kidID)
	} else {
		boxes, err = s.svc.Planner.List(c.Request.Context())
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, boxes)
}

func (s *Server) getLunchBox(c *gin.Context) {
	date, err := pathDate(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	lb, err := s.svc.Planner.Get(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lb)
}

func (s *Server) deleteLunchBox(c *gin.Context) {
	if err := s.svc.Planner.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type dropRequest struct {
	IngredientID string `json:"ingredientId" binding:"required"`
	Compartment  int    `json:"compartment"`
}

func (s *Server) drop(c *gin.Context) {
	date, err := pathDate(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req dropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	lb, err := s.svc.Planner.Drop(c.Request.Context(), c.Param("id"), date, req.IngredientID, req.Compartment)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lb)
}

func (s *Server) removeItem(c *gin.Context) {
	date, err := pathDate(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	compartment, err := pathCompartment(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	lb, err := s.svc.Planner.Remove(c.Request.Context(), c.Param("id"), date, compartment, c.Param("ingredientId"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lb)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) setQuantity(c *gin.Context) {
	date, err := pathDate(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	compartment, err := pathCompartment(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	lb, err := s.svc.Planner.SetQuantity(c.Request.Context(), c.Param("id"), date, compartment, c.Param("ingredientId"), req.Quantity)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lb)
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (s *Server) setNotes(c *gin.Context) {
	date, err := pathDate(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	lb, err := s.svc.Planner.SetNotes(c.Request.Context(), c.Param("id"), date, req.Notes)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lb)
}

type evaluateRequest struct {
	Ingredients []domain.LunchBoxIngredient `json:"ingredients"`
}

func (s *Server) evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, err)
		return
	}
	eval, err := s.svc.Planner.Evaluate(c.Request.Context(), req.Ingredients)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, eval)
}

func (s *Server) listSettings(c *gin.Context) {
	settings, err := s.svc.Settings.AllSettings(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) getSetting(c *gin.Context) {
	value, err := s.svc.Settings.GetSetting(c.Request.Context(), c.Param("key"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", value)
}

func (s *Server) putSetting(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxSettingBytes))
	if err != nil {
		s.badRequest(c, err)
		return
	}
	if err := s.svc.Settings.SetSetting(c.Request.Context(), c.Param("key"), json.RawMessage(body)); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getSession(c *gin.Context) {
	session, err := s.svc.Sessions.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, apperrors.NewInternalError(err))
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *Server) putSession(c *gin.Context) {
	var session domain.Session
	if err := c.ShouldBindJSON(&session); err != nil {
		s.badRequest(c, err)
		return
	}
	switch session.PantryView {
	case domain.PantryViewGrid, domain.PantryViewList:
	default:
		s.fail(c, apperrors.NewValidationError("pantryView must be grid or list"))
		return
	}
	d, err := utils.ParseDate(session.CurrentDate)
	if err != nil {
		s.fail(c, apperrors.NewValidationError("currentDate must be YYYY-MM-DD"))
		return
	}
	session.CurrentDate = utils.FormatDate(d)

	if err := s.svc.Sessions.SaveSession(c.Request.Context(), c.Param("id"), session); err != nil {
		s.fail(c, apperrors.NewInternalError(err))
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *Server) deleteSession(c *gin.Context) {
	if err := s.svc.Sessions.ClearSession(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, apperrors.NewInternalError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) exportSnapshot(c *gin.Context) {
	data, err := s.svc.Snapshots.Export(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	filename := fmt.Sprintf("lunchlego-backup-%s.json", utils.FormatDate(time.Now()))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) importSnapshot(c *gin.Context) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes))
	if err != nil {
		s.fail(c, apperrors.NewInvalidFormatError(err))
		return
	}
	if err := s.svc.Snapshots.Import(c.Request.Context(), data); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "imported"})
}
