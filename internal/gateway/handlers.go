package gateway

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/okxbot/gookx/internal/services"
	"github.com/okxbot/gookx/okx/types"
)

const defaultInstrument = "BTC-USDT"

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Message: msg})
}

func (s *Server) handleHealth(c *gin.Context) {
	key, secret, passphrase := s.exchange.Configured()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"demo":      s.exchange.Demo(),
		"credentials": gin.H{
			"api_key":    key,
			"secret_key": secret,
			"passphrase": passphrase,
		},
	})
}

func (s *Server) handleBuyWithExits(c *gin.Context) {
	var params services.BuyWithExitsParams
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	result := s.trading.BuyWithExits(c.Request.Context(), params)

	status := http.StatusOK
	if !result.Success && !result.PartialFailure && result.BuyOrder == nil {
		// Nothing was executed; the failure is fully reported to the caller.
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, result)
}

func (s *Server) handleSell(c *gin.Context) {
	var params services.SellParams
	if err := c.ShouldBindJSON(&params); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	result := s.trading.Sell(c.Request.Context(), params)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, result)
}

type cancelRequest struct {
	InstID  string `json:"inst_id"`
	OrderID string `json:"order_id"`
}

func (s *Server) handleCancelOrder(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	result := s.trading.Cancel(c.Request.Context(), req.InstID, req.OrderID)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, result)
}

func (s *Server) handleMarketData(c *gin.Context) {
	instID := c.DefaultQuery("instId", defaultInstrument)
	snap := s.analytics.Snapshot(c.Request.Context(), instID)
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleTickers(c *gin.Context) {
	instType := types.InstType(c.DefaultQuery("instType", string(types.InstTypeSpot)))
	data, err := s.exchange.GetTickers(c.Request.Context(), instType)
	if err != nil {
		c.JSON(http.StatusBadGateway, errorResponse{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "inst_type": instType, "data": data})
}

func (s *Server) handleCurrencies(c *gin.Context) {
	currencies, err := s.exchange.GetCurrencies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, errorResponse{Message: err.Error()})
		return
	}
	limit := len(currencies)
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 && n < limit {
			limit = n
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(currencies), "currencies": currencies[:limit]})
}

func (s *Server) handleTestConnection(c *gin.Context) {
	result := s.exchange.TestConnection(c.Request.Context())
	status := http.StatusOK
	if result.Status != "success" {
		status = http.StatusBadGateway
	}
	c.JSON(status, result)
}
