package bridge

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gpuhost-io/gpuhost/internal/invoker"
	"github.com/gpuhost-io/gpuhost/internal/models"
)

// statusResponse is the payload for supervisor operations.
type statusResponse struct {
	Status models.DaemonStatus `json:"status"`
	Error  string              `json:"error,omitempty"`
}

// rentalRequest is the body for POST /gpus/:id/rental.
type rentalRequest struct {
	HourlyRate float64 `json:"hourly_rate"`
	Available  bool    `json:"available"`
}

func (s *Server) handleDaemonStatus(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{Status: s.sup.Status()})
}

func (s *Server) handleDaemonStart(c *gin.Context) {
	status, err := s.sup.Start()
	if err != nil {
		c.JSON(http.StatusBadGateway, statusResponse{Status: status, Error: err.Error()})
		return
	}
	// A start while already starting/online is informational success.
	c.JSON(http.StatusOK, statusResponse{Status: status})
}

func (s *Server) handleDaemonStop(c *gin.Context) {
	status, err := s.sup.Stop()
	if err != nil {
		c.JSON(http.StatusBadGateway, statusResponse{Status: status, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, statusResponse{Status: status})
}

func (s *Server) handleGetGPUs(c *gin.Context) {
	gpus, err := s.inv.DetectedGPUs(c.Request.Context())
	if err != nil {
		writeInvokerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gpus)
}

func (s *Server) handleSetGPURental(c *gin.Context) {
	var req rentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	gpu, err := s.inv.SetGPURentalConfig(c.Request.Context(), c.Param("id"), req.HourlyRate, req.Available)
	if err != nil {
		writeInvokerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gpu)
}

func (s *Server) handleGetSettings(c *gin.Context) {
	settings, err := s.inv.ProviderSettings(c.Request.Context())
	if err != nil {
		writeInvokerError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(c *gin.Context) {
	var settings models.ProviderSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	confirmed, err := s.inv.UpdateProviderSettings(c.Request.Context(), settings)
	if err != nil {
		writeInvokerError(c, err)
		return
	}
	c.JSON(http.StatusOK, confirmed)
}

func (s *Server) handleGetJobs(c *gin.Context) {
	jobs, err := s.inv.LocalJobs(c.Request.Context())
	if err != nil {
		writeInvokerError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (s *Server) handleGetNetwork(c *gin.Context) {
	status, err := s.inv.NetworkStatus(c.Request.Context())
	if err != nil {
		writeInvokerError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleGetFinancial(c *gin.Context) {
	summary, err := s.inv.FinancialSummary(c.Request.Context())
	if err != nil {
		writeInvokerError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleGetSystem(c *gin.Context) {
	overview, err := s.inv.SystemOverview(c.Request.Context())
	if err != nil {
		writeInvokerError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// writeInvokerError maps the invoker error taxonomy onto HTTP responses.
// All worker failures are 502s; the kind field tells the GUI which detail
// fields to expect.
func writeInvokerError(c *gin.Context, err error) {
	var spawnErr *invoker.SpawnError
	var exitErr *invoker.ExitError
	var parseErr *invoker.ParseError

	switch {
	case errors.As(err, &spawnErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"kind":  "spawn_failed",
			"args":  spawnErr.Args,
			"error": spawnErr.Error(),
		})
	case errors.As(err, &exitErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"kind":      "invocation_failed",
			"args":      exitErr.Args,
			"exit_code": exitErr.ExitCode,
			"stdout":    exitErr.Stdout,
			"stderr":    exitErr.Stderr,
			"error":     exitErr.Error(),
		})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"kind":   "malformed_response",
			"args":   parseErr.Args,
			"stdout": parseErr.Stdout,
			"error":  parseErr.Error(),
		})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"kind": "internal", "error": err.Error()})
	}
}
