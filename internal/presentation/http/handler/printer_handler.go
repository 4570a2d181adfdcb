package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bompreco/pdv-api/internal/application/service"
	"github.com/bompreco/pdv-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
	pollerService  *service.PollerService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService, pollerService *service.PollerService) *PrinterHandler {
	return &PrinterHandler{
		printerService: printerService,
		pollerService:  pollerService,
	}
}

// GetStatus returns the current printer detection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.Status()
	response.OK(c, status.Message, status)
}

// TestPrint sends a fixed sample receipt to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	if err := h.printerService.TestPrint(); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cupom de teste enviado para a impressora", nil)
}

// Poll runs one pass over the pending-print backlog on demand.
func (h *PrinterHandler) Poll(c *gin.Context) {
	report, err := h.pollerService.Run(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Fila de impressao processada", report)
}
