package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gudangpro/inventory/internal/domain/dashboard"
	"github.com/gudangpro/inventory/internal/domain/errs"
	"github.com/gudangpro/inventory/internal/domain/movement"
	"github.com/gudangpro/inventory/internal/domain/sparepart"
	"github.com/gudangpro/inventory/internal/reports"
)

type Handler struct {
	spareparts *sparepart.Service
	movements  *movement.Service
	dashboard  *dashboard.Service
	loc        *time.Location // timezone for date query params
	log        *slog.Logger
}

func NewHandler(sp *sparepart.Service, mv *movement.Service, db *dashboard.Service, loc *time.Location, log *slog.Logger) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{spareparts: sp, movements: mv, dashboard: db, loc: loc, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the domain taxonomy to status codes. Anything not in
// the taxonomy is an internal failure: logged, and masked for the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()

	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrDuplicateSKU),
		errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrHasMovements):
		status = http.StatusConflict
	default:
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{"message": msg})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed body", errs.ErrInvalidInput)
	}
	return nil
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad id", errs.ErrInvalidInput)
	}
	return id, nil
}

/* spareparts */

func (h *Handler) ListSpareparts(w http.ResponseWriter, r *http.Request) {
	p := PrincipalFrom(r.Context())
	items, err := h.spareparts.List(r.Context(), p, r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	dtos := make([]sparepartDTO, 0, len(items))
	for _, s := range items {
		dtos = append(dtos, toSparepartDTO(s))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": dtos})
}

func (h *Handler) GetSparepart(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.spareparts.Get(r.Context(), PrincipalFrom(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": toSparepartDTO(*s)})
}

func (h *Handler) CreateSparepart(w http.ResponseWriter, r *http.Request) {
	var req createSparepartReq
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.spareparts.Create(r.Context(), PrincipalFrom(r.Context()), sparepart.CreateInput{
		SKU:      req.SKU,
		Name:     req.Name,
		Category: req.Category,
		Unit:     req.Unit,
		RackLoc:  req.RackLoc,
		MinStock: req.MinStock,
		StockQty: req.StockQty,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "id": s.ID})
}

func (h *Handler) UpdateSparepart(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req updateSparepartReq
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.spareparts.Update(r.Context(), PrincipalFrom(r.Context()), id, sparepart.UpdateInput{
		SKU:      req.SKU,
		Name:     req.Name,
		Category: req.Category,
		Unit:     req.Unit,
		RackLoc:  req.RackLoc,
		MinStock: req.MinStock,
		StockQty: req.StockQty,
		Active:   req.IsActive,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "item": toSparepartDTO(*s)})
}

func (h *Handler) DeleteSparepart(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.spareparts.Delete(r.Context(), PrincipalFrom(r.Context()), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

/* movements */

func (h *Handler) movementFilter(r *http.Request) (movement.Filter, error) {
	q := r.URL.Query()
	f := movement.Filter{Search: q.Get("q")}

	if t := q.Get("type"); t != "" && t != "ALL" {
		mt, err := movement.ParseType(t)
		if err != nil {
			return f, err
		}
		f.Type = mt
	}
	if from := q.Get("from"); from != "" {
		d, err := time.ParseInLocation("2006-01-02", from, h.loc)
		if err != nil {
			return f, fmt.Errorf("%w: bad from date", errs.ErrInvalidInput)
		}
		f.From = d
	}
	if to := q.Get("to"); to != "" {
		d, err := time.ParseInLocation("2006-01-02", to, h.loc)
		if err != nil {
			return f, fmt.Errorf("%w: bad to date", errs.ErrInvalidInput)
		}
		f.To = d
	}
	return f, nil
}

func (h *Handler) ListMovements(w http.ResponseWriter, r *http.Request) {
	f, err := h.movementFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	items, err := h.movements.List(r.Context(), PrincipalFrom(r.Context()), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	dtos := make([]movementDTO, 0, len(items))
	for _, e := range items {
		dtos = append(dtos, toMovementDTO(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": dtos})
}

func (h *Handler) CreateMovement(w http.ResponseWriter, r *http.Request) {
	var req createMovementReq
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	_, err := h.movements.Create(r.Context(), PrincipalFrom(r.Context()), movement.CreateInput{
		SparepartID: req.SparepartID,
		Type:        req.Type,
		Qty:         req.Qty,
		Note:        req.Note,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (h *Handler) ExportMovements(w http.ResponseWriter, r *http.Request) {
	f, err := h.movementFilter(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	items, err := h.movements.List(r.Context(), PrincipalFrom(r.Context()), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	data, err := reports.MovementsXLSX(items)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="movements.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

/* dashboard */

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var day time.Time
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, h.loc)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: bad date", errs.ErrInvalidInput))
			return
		}
		day = parsed
	}

	sum, err := h.dashboard.Summary(r.Context(), PrincipalFrom(r.Context()), day)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryDTO{
		Date:            sum.Date.Format("2006-01-02"),
		TotalSpareparts: sum.TotalSpareparts,
		CriticalCount:   sum.CriticalCount,
		InQty:           sum.InQty,
		OutQty:          sum.OutQty,
	})
}
