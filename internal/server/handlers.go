package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type processRequest struct {
	Orders []int64 `json:"orders"`
}

type orderResult struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

// processOrders handles one batch of order ids. Orders are processed in
// request order; a failing order is reported and the rest still run.
func (s *Server) processOrders(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Orders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid or empty orders list",
		})
		return
	}

	results := make([]orderResult, 0, len(req.Orders))
	for _, id := range req.Orders {
		log := s.log.With().Int64("order_id", id).Logger()
		log.Info().Msg("Processing order")

		if err := s.processor.ProcessByID(c.Request.Context(), id); err != nil {
			log.Error().Err(err).Msg("Order failed")
			results = append(results, orderResult{OrderID: id, Status: "failed", Error: err.Error()})
			continue
		}

		results = append(results, orderResult{OrderID: id, Status: "success", Output: "invoice created"})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "completed",
		"results": results,
	})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
