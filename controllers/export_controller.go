package controllers

import (
	"fmt"
	"net/http"
	"time"

	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	Service   *services.ExportService
	Reporting *services.ReportingService
}

func NewExportController(s *services.ExportService, reporting *services.ReportingService) *ExportController {
	return &ExportController{Service: s, Reporting: reporting}
}

func attachmentName(prefix, ext string) string {
	return fmt.Sprintf("%s-%s.%s", prefix, time.Now().Format("20060102"), ext)
}

// ReservationsCSV handles GET /api/exports/reservations.csv?start=&end=.
func (ec *ExportController) ReservationsCSV(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+attachmentName("reservations", "csv"))
	if err := ec.Service.ReservationsCSV(c.Writer, start, end); err != nil {
		respondServiceError(c, err)
	}
}

// InvoicesCSV handles GET /api/exports/invoices.csv?start=&end=.
func (ec *ExportController) InvoicesCSV(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+attachmentName("invoices", "csv"))
	if err := ec.Service.InvoicesCSV(c.Writer, start, end); err != nil {
		respondServiceError(c, err)
	}
}

// OccupancyXLSX handles GET /api/exports/occupancy.xlsx?start=&end=.
func (ec *ExportController) OccupancyXLSX(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	f, err := ec.Service.OccupancyXLSX(ec.Reporting, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+attachmentName("occupancy", "xlsx"))
	if _, err := f.WriteTo(c.Writer); err != nil {
		respondServiceError(c, err)
	}
}
