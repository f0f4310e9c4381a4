// Package api exposes the analysis engine and the run history over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"pbx-insights-go/internal/charts"
	"pbx-insights-go/internal/logger"
	"pbx-insights-go/internal/pipeline"
	"pbx-insights-go/internal/processor"
	"pbx-insights-go/internal/types"
)

// RunStore is the read side of the history. *history.Store satisfies it.
type RunStore interface {
	Get(id string) (types.RunRecord, bool, error)
	List(accountID string, limit int) ([]types.RunRecord, error)
}

type Handler struct {
	log     *logger.Logger
	proc    *processor.Processor
	store   RunStore
	maxBody int64
}

func New(log *logger.Logger, proc *processor.Processor, store RunStore, maxBody int64) *Handler {
	return &Handler{
		log:     log.Component("api"),
		proc:    proc,
		store:   store,
		maxBody: maxBody,
	}
}

// analyzeResponse is the run record plus, on request, chart data.
type analyzeResponse struct {
	types.RunRecord
	Charts *charts.ChartData `json:"charts,omitempty"`
}

// Routes registers every endpoint on a fresh mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("POST /analyze", h.analyze)
	mux.HandleFunc("GET /reports", h.listReports)
	mux.HandleFunc("GET /reports/{id}", h.getReport)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.log.WithRequest(r).Debug("health check")
	fmt.Fprint(w, "ok")
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	reqLog := h.log.WithRequest(r).WithField("handler", "analyze")

	q := r.URL.Query()
	accountID := q.Get("account_id")
	if accountID == "" {
		reqLog.Warn("missing account_id")
		http.Error(w, "missing account_id", http.StatusBadRequest)
		return
	}
	withCharts, _ := strconv.ParseBool(q.Get("charts"))
	reqLog = reqLog.WithFields(logrus.Fields{"account_id": accountID, "charts": withCharts})

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			reqLog.WithField("limit", tooLarge.Limit).Warn("body too large")
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		reqLog.WithError(err).Warn("read body failed")
		http.Error(w, "cannot read request body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	rec, err := h.proc.Process(r.Context(), processor.Job{
		AccountID:   accountID,
		AccountName: q.Get("account_name"),
		Source:      processor.BytesSource(body),
	})
	reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).Info("processor finished")

	status := http.StatusOK
	if err != nil {
		var perr *pipeline.ParseError
		if errors.As(err, &perr) {
			status = http.StatusUnprocessableEntity
		} else {
			status = http.StatusInternalServerError
		}
		reqLog.WithError(err).WithField("status", status).Warn("processor returned error")
	}

	resp := analyzeResponse{RunRecord: rec}
	if withCharts && rec.Report != nil {
		c := charts.Extract(rec.Report)
		resp.Charts = &c
	}
	h.writeJSON(w, reqLog, status, resp)
}

func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	reqLog := h.log.WithRequest(r).WithField("handler", "reports")
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		http.Error(w, "missing account_id", http.StatusBadRequest)
		return
	}
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	recs, err := h.store.List(accountID, limit)
	if err != nil {
		reqLog.WithError(err).Error("history list failed")
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, reqLog, http.StatusOK, recs)
}

func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	reqLog := h.log.WithRequest(r).WithField("handler", "report")
	id := r.PathValue("id")

	rec, ok, err := h.store.Get(id)
	if err != nil {
		reqLog.WithError(err).Error("history get failed")
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, reqLog, http.StatusOK, rec)
}

func (h *Handler) writeJSON(w http.ResponseWriter, reqLog *logrus.Entry, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		reqLog.WithError(err).Error("failed to write response")
	}
}
