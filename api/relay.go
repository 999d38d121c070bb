package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linlinbupt123-crypto/relay_service/request"
	"github.com/linlinbupt123-crypto/relay_service/service"
	"github.com/linlinbupt123-crypto/relay_service/telemetry"
)

const statusMessage = "STI relay node is online and ready to sign transactions."

type RelayHandler struct {
	relayService *service.RelayService
}

func NewRelayHandler(rs *service.RelayService) *RelayHandler {
	return &RelayHandler{relayService: rs}
}

// Root is a plain-text liveness probe.
func (h *RelayHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, statusMessage)
}

// Transfer handles POST /transfer. Every failure kind maps to a uniform 500
// with {"error": message}, matching the relay's documented contract.
func (h *RelayHandler) Transfer(c *gin.Context) {
	var req request.TransferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		telemetry.TransfersTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	txHash, err := h.relayService.Transfer(c.Request.Context(), &req)
	if err != nil {
		telemetry.TransfersTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	telemetry.TransfersTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"tx_hash": txHash,
	})
}

// Balance handles GET /balance for the signer's own address.
func (h *RelayHandler) Balance(c *gin.Context) {
	balance, err := h.relayService.Balance(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
