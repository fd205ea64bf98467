package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/services"

	"github.com/gin-gonic/gin"
)

type SimulatorHandler struct {
	Catalog *services.Catalog
}

func NewSimulatorHandler(catalog *services.Catalog) *SimulatorHandler {
	return &SimulatorHandler{Catalog: catalog}
}

// Thickness compares lens thickness for a prescription degree. Without
// ?index every material of the catalog is returned.
func (h *SimulatorHandler) Thickness(c *gin.Context) {
	degree, err := strconv.ParseFloat(c.Query("degree"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid degree"})
		return
	}

	results, err := services.SimulateThickness(h.Catalog, degree, c.Query("index"))
	switch {
	case errors.Is(err, services.ErrInvalidDegree):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid degree"})
		return
	case errors.Is(err, services.ErrUnknownOption):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to simulate thickness"})
		return
	}

	c.JSON(http.StatusOK, models.ThicknessResponse{Degree: degree, Results: results})
}
