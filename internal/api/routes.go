package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/tasbih/internal/models"
	"github.com/zulandar/tasbih/internal/store"
)

// CounterPayload is the wire shape of a counter. The target field is named
// "count" on the wire for compatibility with existing clients.
type CounterPayload struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Count       int        `json:"count"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CreateCounterRequest is the body of POST /counters.
type CreateCounterRequest struct {
	Title string `json:"title" binding:"required"`
	Count int    `json:"count" binding:"required,min=1,max=10000"`
}

// CompleteRunRequest is the body of POST /counters/:id/complete.
type CompleteRunRequest struct {
	Count int `json:"count" binding:"required,min=1"`
}

// ErrorResponse is the body of all non-2xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func toPayload(c models.Counter) CounterPayload {
	return CounterPayload{
		ID:          c.ID,
		Title:       c.Title,
		Count:       c.Target,
		CreatedAt:   c.CreatedAt,
		CompletedAt: c.CompletedAt,
	}
}

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, s *store.Store) {
	router.GET("/healthz", handleHealth)
	router.GET("/counters", handleListCounters(s))
	router.POST("/counters", handleCreateCounter(s))
	router.POST("/counters/:id/complete", handleCompleteRun(s))
	router.DELETE("/counters/:id", handleDeleteCounter(s))
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func handleListCounters(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		counters := s.List()
		out := make([]CounterPayload, len(counters))
		for i, counter := range counters {
			out[i] = toPayload(counter)
		}
		c.JSON(http.StatusOK, out)
	}
}

func handleCreateCounter(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCounterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: err.Error(),
				Code:  "VALIDATION",
			})
			return
		}

		counter, err := s.Create(req.Title, req.Count)
		if err != nil {
			// Binding already enforced the schema; this covers inputs the
			// store rejects that tags cannot express.
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: err.Error(),
				Code:  "VALIDATION",
			})
			return
		}
		c.JSON(http.StatusOK, toPayload(counter))
	}
}

func handleCompleteRun(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "unknown counter id",
				Code:  "NOT_FOUND",
			})
			return
		}

		var req CompleteRunRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: err.Error(),
				Code:  "VALIDATION",
			})
			return
		}

		counter, err := s.CompleteRun(id, req.Count)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, ErrorResponse{
					Error: err.Error(),
					Code:  "NOT_FOUND",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: err.Error(),
				Code:  "INTERNAL",
			})
			return
		}
		c.JSON(http.StatusOK, toPayload(counter))
	}
}

func handleDeleteCounter(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "unknown counter id",
				Code:  "NOT_FOUND",
			})
			return
		}

		if err := s.Delete(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, ErrorResponse{
					Error: err.Error(),
					Code:  "NOT_FOUND",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: err.Error(),
				Code:  "INTERNAL",
			})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
