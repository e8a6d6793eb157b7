// internal/interfaces/http/handlers/report.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/inventory-backend/internal/config"
	"github.com/your-org/inventory-backend/internal/domain/report"
	"gorm.io/gorm"
)

// ReportHandler handles dashboard report endpoints
type ReportHandler struct {
	reportService *report.Service
	config        *config.Config
}

// NewReportHandler creates a new report handler
func NewReportHandler(db *gorm.DB, cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		reportService: report.NewService(db, cfg),
		config:        cfg,
	}
}

// Summary handles GET /app/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.GetSummary()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// TopSelling handles GET /app/top-selling
func (h *ReportHandler) TopSelling(c *gin.Context) {
	dateRange, ok := queryDateRange(c)
	if !ok {
		return
	}

	items, err := h.reportService.GetTopSelling(&report.TopSellingRequest{
		Total: c.Query("total") == "true",
		Range: dateRange,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// SalesByClient handles GET /app/sales-by-client
func (h *ReportHandler) SalesByClient(c *gin.Context) {
	dateRange, ok := queryDateRange(c)
	if !ok {
		return
	}

	resp, err := h.reportService.GetSalesByClient(&report.SalesByClientRequest{
		Monthly: c.Query("monthly") == "true",
		Total:   c.Query("total") == "true",
		Range:   dateRange,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// PurchaseSummary handles GET /app/purchase-summary
func (h *ReportHandler) PurchaseSummary(c *gin.Context) {
	dateRange, ok := queryDateRange(c)
	if !ok {
		return
	}

	summary, err := h.reportService.GetPurchaseSummary(&report.PurchaseSummaryRequest{
		Total: c.Query("total") == "true",
		Range: dateRange,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// queryDateRange parses optional start_date/end_date parameters (2006-01-02).
// The end date is pushed to the last instant of its day so ranges stay
// inclusive.
func queryDateRange(c *gin.Context) (report.DateRange, bool) {
	const layout = "2006-01-02"
	var dateRange report.DateRange

	if raw := c.Query("start_date"); raw != "" {
		start, err := time.Parse(layout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, expected YYYY-MM-DD"})
			return dateRange, false
		}
		dateRange.Start = start
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err := time.Parse(layout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, expected YYYY-MM-DD"})
			return dateRange, false
		}
		dateRange.End = end.Add(24*time.Hour - time.Nanosecond)
	}

	return dateRange, true
}
