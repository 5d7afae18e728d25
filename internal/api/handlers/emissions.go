package handlers

import (
	"ecologix-service/internal/api/dto"
	"ecologix-service/internal/domain"
	"ecologix-service/internal/ports"
	"net/http"
	"strconv"
	"time"
)

// EmissionReportHandler serves single-entity and date-range emission reports.
type EmissionReportHandler struct {
	Repo ports.ReportingRepository
}

func (h *EmissionReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()

	if raw := q.Get("delivery_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "delivery_id must be an integer")
			return
		}
		rec, err := h.Repo.ReportByDelivery(ctx, id)
		if err != nil {
			writeDomainError(w, r, "emission report", err)
			return
		}
		writeSuccess(w, r, http.StatusOK, dto.NewSingleReportResponse(rec))
		return
	}

	if shipmentID := q.Get("shipment_id"); shipmentID != "" {
		rec, err := h.Repo.ReportByShipment(ctx, shipmentID)
		if err != nil {
			writeDomainError(w, r, "emission report", err)
			return
		}
		writeSuccess(w, r, http.StatusOK, dto.NewSingleReportResponse(rec))
		return
	}

	if orderID := q.Get("order_id"); orderID != "" {
		records, err := h.Repo.ReportByOrder(ctx, orderID)
		if err != nil {
			writeDomainError(w, r, "emission report", err)
			return
		}

		res := dto.OrderReportResponse{
			OrderID:       orderID,
			Deliveries:    make([]dto.DeliveryResponse, 0, len(records)),
			DeliveryCount: len(records),
		}
		for _, rec := range records {
			res.Deliveries = append(res.Deliveries, dto.NewDeliveryResponse(rec))
			if rec.CO2EmissionsKg != nil {
				res.TotalEmissions += *rec.CO2EmissionsKg
			}
		}
		res.TotalEmissions = domain.Round4(res.TotalEmissions)

		writeSuccess(w, r, http.StatusOK, res)
		return
	}

	h.rangeReport(w, r)
}

func (h *EmissionReportHandler) rangeReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var dateRange ports.DateRange
	var startRaw, endRaw *string

	if raw := q.Get("start_date"); raw != "" {
		t, err := parseReportDate(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "start_date must be an RFC 3339 timestamp or YYYY-MM-DD date")
			return
		}
		dateRange.Start = &t
		startRaw = &raw
	}
	if raw := q.Get("end_date"); raw != "" {
		t, err := parseReportDate(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "end_date must be an RFC 3339 timestamp or YYYY-MM-DD date")
			return
		}
		dateRange.End = &t
		endRaw = &raw
	}

	records, err := h.Repo.ReportByDateRange(r.Context(), dateRange)
	if err != nil {
		writeDomainError(w, r, "emission report", err)
		return
	}

	res := dto.RangeReportResponse{
		Deliveries: make([]dto.DeliveryResponse, 0, len(records)),
		Summary: dto.ReportSummaryResponse{
			TotalDeliveries: len(records),
			StartDate:       startRaw,
			EndDate:         endRaw,
		},
	}
	for _, rec := range records {
		res.Deliveries = append(res.Deliveries, dto.NewDeliveryResponse(rec))
		if rec.CO2EmissionsKg != nil {
			res.Summary.TotalEmissions += *rec.CO2EmissionsKg
		}
	}
	res.Summary.TotalEmissions = domain.Round4(res.Summary.TotalEmissions)
	if len(records) > 0 {
		res.Summary.AvgEmissionsPerDelivery = domain.Round4(res.Summary.TotalEmissions / float64(len(records)))
	}

	writeSuccess(w, r, http.StatusOK, res)
}

func parseReportDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
