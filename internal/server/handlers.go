package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/elojah/pvcurve/internal/chart"
	"github.com/elojah/pvcurve/internal/curve"
	"github.com/elojah/pvcurve/internal/pv"
)

type ModuleRequest struct {
	pv.Params
	NumCells int `json:"num_cells"`
}

type CellResponse struct {
	ID              uuid.UUID          `json:"id"`
	Params          pv.Params          `json:"params"`
	Characteristics pv.Characteristics `json:"characteristics"`
	Curve           *curve.Curve       `json:"curve,omitempty"`
}

type ModuleResponse struct {
	ID          uuid.UUID `json:"id"`
	Params      pv.Params `json:"params"`
	NumCells    int       `json:"num_cells"`
	Voc         float64   `json:"voc"`
	Unshaded    pv.MPP    `json:"unshaded_mpp"`
	Shaded      pv.MPP    `json:"shaded_mpp"`
	ShadingLoss float64   `json:"shading_loss"`

	V   []float64 `json:"v,omitempty"`
	Vsh []float64 `json:"vsh,omitempty"`
	I   []float64 `json:"i,omitempty"`
}

func newCellResponse(id uuid.UUID, c *pv.Cell, withCurve bool) CellResponse {
	resp := CellResponse{
		ID:              id,
		Params:          c.Params,
		Characteristics: c.Characteristics(),
	}
	if withCurve {
		cc := c.Curve
		resp.Curve = &cc
	}

	return resp
}

func newModuleResponse(id uuid.UUID, m *pv.Module, withCurves bool) ModuleResponse {
	resp := ModuleResponse{
		ID:          id,
		Params:      m.Params,
		NumCells:    m.NumCells,
		Voc:         m.Voc,
		Unshaded:    m.UnshadedMPP(),
		Shaded:      m.ShadedMPP(),
		ShadingLoss: m.ShadingLoss(),
	}
	if withCurves {
		resp.V, resp.Vsh, resp.I = m.V, m.Vsh, m.I
	}

	return resp
}

// computeError maps pv errors to an HTTP status.
func computeError(c *gin.Context, err error) {
	var perr pv.ErrInvalidParameter
	var derr pv.ErrDegenerateCurve

	switch {
	case errors.As(err, &perr):
		abort(c, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
	case errors.As(err, &derr):
		abort(c, http.StatusUnprocessableEntity, "DEGENERATE_CURVE", err.Error())
	default:
		log.Error().Err(err).Msg("failed to compute curve")
		abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abort(c, http.StatusBadRequest, "BAD_REQUEST", "invalid id")

		return uuid.Nil, false
	}

	return id, true
}

// CreateCell handles POST /api/v1/cells
func (s *Server) CreateCell(c *gin.Context) {
	var p pv.Params
	if err := c.ShouldBindJSON(&p); err != nil {
		abort(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())

		return
	}

	cell, err := pv.NewCell(p)
	if err != nil {
		computeError(c, err)

		return
	}

	id := s.cells.Put(cell)
	log.Info().Str("id", id.String()).Str("label", p.Label).Msg("cell computed")

	c.JSON(http.StatusCreated, newCellResponse(id, cell, false))
}

// GetCell handles GET /api/v1/cells/:id
func (s *Server) GetCell(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cell, ok := s.cells.Get(id)
	if !ok {
		abort(c, http.StatusNotFound, "NOT_FOUND", "cell not found")

		return
	}

	c.JSON(http.StatusOK, newCellResponse(id, cell, true))
}

// GetCellChart handles GET /api/v1/cells/:id/chart
func (s *Server) GetCellChart(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cell, ok := s.cells.Get(id)
	if !ok {
		abort(c, http.StatusNotFound, "NOT_FOUND", "cell not found")

		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := chart.CellHTML(c.Writer, cell); err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("failed to render cell chart")
	}
}

// CreateModule handles POST /api/v1/modules
func (s *Server) CreateModule(c *gin.Context) {
	var req ModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())

		return
	}

	m, err := pv.NewModule(req.Params, req.NumCells)
	if err != nil {
		computeError(c, err)

		return
	}

	id := s.modules.Put(m)
	log.Info().Str("id", id.String()).Int("num_cells", req.NumCells).Msg("module computed")

	c.JSON(http.StatusCreated, newModuleResponse(id, m, false))
}

// GetModule handles GET /api/v1/modules/:id
func (s *Server) GetModule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	m, ok := s.modules.Get(id)
	if !ok {
		abort(c, http.StatusNotFound, "NOT_FOUND", "module not found")

		return
	}

	c.JSON(http.StatusOK, newModuleResponse(id, m, true))
}

// GetModuleChart handles GET /api/v1/modules/:id/chart
func (s *Server) GetModuleChart(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	m, ok := s.modules.Get(id)
	if !ok {
		abort(c, http.StatusNotFound, "NOT_FOUND", "module not found")

		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := chart.ModuleHTML(c.Writer, m); err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("failed to render module chart")
	}
}
