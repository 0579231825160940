package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdrpinto/gridstar"
)

// PathRequest is the body of POST /v1/paths.
type PathRequest struct {
	Start *gridstar.Point `json:"start" binding:"required"`
	End   *gridstar.Point `json:"end" binding:"required"`
}

// GridRequest is the body of PUT /v1/grid.
type GridRequest struct {
	Rows [][]int `json:"rows" binding:"required,min=1"`
}

// Progress describes a job still being searched.
type Progress struct {
	Expanded int            `json:"expanded"`
	Position int            `json:"position"`
	Open     int            `json:"open"`
	Closed   int            `json:"closed"`
	Best     gridstar.Point `json:"best"`
	BestCost float64        `json:"best_cost"`
}

// JobResponse is returned by the job endpoints.
type JobResponse struct {
	Job
	Progress *Progress `json:"progress,omitempty"`
}

// ErrorResponse is returned for failed calls.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handlers serves the path job API.
type Handlers struct {
	engine *Engine
	jobs   *JobStore
	logger *slog.Logger
}

func NewHandlers(engine *Engine, jobs *JobStore, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{engine: engine, jobs: jobs, logger: logger.With("component", "http")}
}

// HandleSubmit queues a path job.
func (h *Handlers) HandleSubmit(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	job := h.jobs.create(*req.Start, *req.End)
	var findErr error
	err := h.engine.Do(c.Request.Context(), func(pf *gridstar.Pathfinder[int]) {
		id, err := pf.FindPath(req.Start.X, req.Start.Y, req.End.X, req.End.Y, func(result gridstar.Result) {
			h.jobs.complete(job.ID, result)
			if result.Found {
				jobsTotal.WithLabelValues(string(StatusFound)).Inc()
			} else {
				jobsTotal.WithLabelValues(string(StatusNotFound)).Inc()
			}
		})
		if err != nil {
			findErr = err
			return
		}
		h.jobs.setRequestID(job.ID, id)
	})
	if err != nil {
		h.jobs.remove(job.ID)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
		return
	}
	if findErr != nil {
		h.jobs.remove(job.ID)
		status := http.StatusBadRequest
		if errors.Is(findErr, gridstar.ErrNoGrid) || errors.Is(findErr, gridstar.ErrNoAcceptableTiles) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, ErrorResponse{Error: findErr.Error()})
		return
	}

	current, _ := h.jobs.Get(job.ID)
	h.logger.Debug("path job submitted", "job", current.ID, "request", current.requestID, "status", current.Status)
	if current.Status == StatusPending {
		c.JSON(http.StatusAccepted, JobResponse{Job: current})
		return
	}
	c.JSON(http.StatusOK, JobResponse{Job: current})
}

// HandleGet reports a job, with search progress while it is pending.
func (h *Handlers) HandleGet(c *gin.Context) {
	job, ok := h.jobs.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "job not found"})
		return
	}
	resp := JobResponse{Job: job}
	if job.Status == StatusPending && job.requestID != 0 {
		var snapshot gridstar.Snapshot
		var live bool
		err := h.engine.Do(c.Request.Context(), func(pf *gridstar.Pathfinder[int]) {
			snapshot, live = pf.Inspect(job.requestID)
		})
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
			return
		}
		if live {
			resp.Progress = &Progress{
				Expanded: snapshot.Expanded,
				Position: snapshot.Position,
				Open:     len(snapshot.Open),
				Closed:   len(snapshot.Closed),
				Best:     snapshot.Best,
				BestCost: snapshot.BestCost,
			}
		} else if refreshed, ok := h.jobs.Get(job.ID); ok {
			resp.Job = refreshed
		}
	}
	c.JSON(http.StatusOK, resp)
}

// HandleCancel cancels a pending job.
func (h *Handlers) HandleCancel(c *gin.Context) {
	job, ok := h.jobs.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "job not found"})
		return
	}
	var cancelled bool
	if job.requestID != 0 {
		err := h.engine.Do(c.Request.Context(), func(pf *gridstar.Pathfinder[int]) {
			cancelled = pf.CancelPath(job.requestID)
		})
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
			return
		}
	}
	if !cancelled {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "job is no longer pending"})
		return
	}
	h.jobs.cancel(job.ID)
	jobsTotal.WithLabelValues(string(StatusCancelled)).Inc()

	current, _ := h.jobs.Get(job.ID)
	c.JSON(http.StatusOK, JobResponse{Job: current})
}

// HandlePutGrid installs a new grid between two ticks.
func (h *Handlers) HandlePutGrid(c *gin.Context) {
	var req GridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	var setErr error
	err := h.engine.Do(c.Request.Context(), func(pf *gridstar.Pathfinder[int]) {
		setErr = pf.SetGrid(req.Rows)
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
		return
	}
	if setErr != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: setErr.Error()})
		return
	}
	h.logger.Info("grid replaced", "width", len(req.Rows[0]), "height", len(req.Rows))
	c.JSON(http.StatusOK, gin.H{"width": len(req.Rows[0]), "height": len(req.Rows)})
}

// HandleHealth reports liveness.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
