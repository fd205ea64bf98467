package handlers

import (
	"errors"
	"net/http"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/services"

	"github.com/gin-gonic/gin"
)

type SurveyHandler struct {
	Catalog  *services.Catalog
	Sessions *services.WizardSessionService
	Quotes   *services.QuoteService
}

func NewSurveyHandler(catalog *services.Catalog, sessions *services.WizardSessionService, quotes *services.QuoteService) *SurveyHandler {
	return &SurveyHandler{Catalog: catalog, Sessions: sessions, Quotes: quotes}
}

// GetCatalog returns the option tables in display order.
func (h *SurveyHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Tables())
}

// CalculateBudget prices any selection. Unknown ids never fail the request;
// "complete" tells whether the selection could be quoted.
func (h *SurveyHandler) CalculateBudget(c *gin.Context) {
	var req models.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, summary, link := h.Quotes.Price(req.Selections)
	resp := models.BudgetResponse{
		Budget:      budget,
		Summary:     summary,
		WhatsAppURL: link,
		Complete:    true,
	}

	var selErr *services.SelectionError
	if err := services.ValidateSelections(h.Catalog, req.Selections); errors.As(err, &selErr) {
		resp.Complete = false
		resp.Missing = selErr.Field
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SurveyHandler) CreateSession(c *gin.Context) {
	c.JSON(http.StatusCreated, h.Sessions.Create())
}

func (h *SurveyHandler) GetSession(c *gin.Context) {
	view, err := h.Sessions.Get(c.Param("id"))
	if err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SurveyHandler) ApplyAction(c *gin.Context) {
	var action models.WizardAction
	if err := c.ShouldBindJSON(&action); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.Sessions.Apply(c.Param("id"), action)
	if err != nil {
		respondWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SurveyHandler) DeleteSession(c *gin.Context) {
	if err := h.Sessions.Delete(c.Param("id")); err != nil {
		respondWizardError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func wizardErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrCannotAdvance), errors.Is(err, services.ErrWrongStep):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnknownOption):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrUnknownAction):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondWizardError(c *gin.Context, err error) {
	c.JSON(wizardErrorStatus(err), gin.H{"error": err.Error()})
}
