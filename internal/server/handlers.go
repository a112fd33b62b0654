package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/ukaji3/rostergrid/internal/config"
	"github.com/ukaji3/rostergrid/pkg/rostergrid"
	"github.com/ukaji3/rostergrid/pkg/rostergrid/models"
	"github.com/ukaji3/rostergrid/pkg/rostergrid/views"
)

// Handler serves the editing API.
type Handler struct {
	cfg      *config.Config
	log      zerolog.Logger
	sessions *Sessions
	clock    func() time.Time
}

// NewHandler creates a Handler. clock may be nil to use time.Now.
func NewHandler(cfg *config.Config, logger zerolog.Logger, clock func() time.Time) *Handler {
	if clock == nil {
		clock = time.Now
	}
	return &Handler{
		cfg:      cfg,
		log:      logger,
		sessions: NewSessions(cfg.SessionTTL, clock),
		clock:    clock,
	}
}

type tableResponse struct {
	SessionID       string        `json:"session_id,omitempty"`
	TimestampColumn string        `json:"timestamp_column"`
	RowCount        int           `json:"row_count"`
	Table           *models.Table `json:"table"`
}

type addColumnRequest struct {
	Name string `json:"name"`
}

type addRowRequest struct {
	Values map[string]models.Value `json:"values"`
}

type deleteRowsRequest struct {
	Indices []int `json:"indices"`
}

type setCellRequest struct {
	Row    *int         `json:"row"`
	Column string       `json:"column"`
	Value  models.Value `json:"value"`
}

type editResponse struct {
	Message string `json:"message"`
	Stamped []int  `json:"stamped"`
}

type optionsResponse struct {
	Column   string         `json:"column"`
	Options  []models.Value `json:"options"`
	Selected []models.Value `json:"selected"`
}

type countsResponse struct {
	Column  string               `json:"column"`
	Buckets []models.CountBucket `json:"buckets"`
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateSession loads an uploaded workbook into a new session.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		writeBadRequest(w, fmt.Errorf("invalid upload: %w", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, fmt.Errorf("missing file field: %w", err))
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		writeBadRequest(w, fmt.Errorf("unsupported file type %q: upload an .xlsx file", header.Filename))
		return
	}

	store := rostergrid.NewStore(rostergrid.Options{
		TimestampColumn: h.cfg.TimestampColumn,
		Clock:           h.clock,
	})
	if err := store.Load(file); err != nil {
		h.log.Warn().Err(err).Str("file", header.Filename).Msg("upload rejected")
		writeStoreError(w, err)
		return
	}

	id := h.sessions.Create(store)
	tbl := store.Table()
	h.log.Info().
		Str("session", id).
		Str("file", header.Filename).
		Int("rows", tbl.NumRows()).
		Int("columns", len(tbl.Columns)).
		Msg("session created")

	writeJSON(w, http.StatusCreated, tableResponse{
		SessionID:       id,
		TimestampColumn: store.TimestampColumn(),
		RowCount:        tbl.NumRows(),
		Table:           tbl,
	})
}

// DeleteSession ends a session.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionID"]
	if !h.sessions.Delete(id) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	h.log.Info().Str("session", id).Msg("session ended")
	writeMessage(w, http.StatusOK, "Session ended.")
}

// GetTable returns the table, filtered by repeated ?filter= values.
func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(id string, store *rostergrid.Store) {
		tbl, err := h.filtered(store, r)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tableResponse{
			TimestampColumn: store.TimestampColumn(),
			RowCount:        tbl.NumRows(),
			Table:           tbl,
		})
	})
}

// ReplaceTable applies a full edited table.
func (h *Handler) ReplaceTable(w http.ResponseWriter, r *http.Request) {
	var edited models.Table
	if err := json.NewDecoder(r.Body).Decode(&edited); err != nil {
		writeBadRequest(w, err)
		return
	}

	h.withSession(w, r, func(id string, store *rostergrid.Store) {
		stamped, err := store.ApplyEdit(&edited)
		if err != nil {
			h.warn(id, "apply_edit", err)
			writeBadRequest(w, err)
			return
		}
		h.log.Info().Str("session", id).Str("op", "apply_edit").Ints("stamped", stamped).Msg("table edited")
		if stamped == nil {
			stamped = []int{}
		}
		writeJSON(w, http.StatusOK, editResponse{Message: "Table updated.", Stamped: stamped})
	})
}

// SetCell edits one cell.
func (h *Handler) SetCell(w http.ResponseWriter, r *http.Request) {
	var req setCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if req.Row == nil {
		writeBadRequest(w, errors.New("row is required"))
		return
	}

	h.withSession(w, r, func(id string, store *rostergrid.Store) {
		if err := store.SetCell(*req.Row, req.Column, req.Value); err != nil {
			h.warn(id, "set_cell", err)
			writeStoreError(w, err)
			return
		}
		h.log.Info().Str("session", id).Str("op", "set_cell").Int("row", *req.Row).Str("column", req.Column).Msg("cell edited")
		writeMessage(w, http.StatusOK, "Cell updated.")
	})
}

// AddColumn appends an empty column.
func (h *Handler) AddColumn(w http.ResponseWriter, r *http.Request) {
	var req addColumnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}

	h.withSession(w, r, func(id string, store *rostergrid.Store) {
		if err := store.AddColumn(req.Name); err != nil {
			h.warn(id, "add_column", err)
			writeStoreError(w, err)
			return
		}
		h.log.Info().Str("session", id).Str("op", "add_column").Str("column", req.Name).Msg("column added")
		writeMessage(w, http.StatusCreated, "New column '%s' added.", req.Name)
	})
}

// AddRow appends a row.
func (h *Handler) AddRow(w http.ResponseWriter, r *http.Request) {
	var req addRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}

	h.withSession(w, r, func(id string, store *rostergrid.Store) {
		if err := store.AddRow(req.Values); err != nil {
			h.warn(id, "add_row", err)
			writeStoreError(w, err)
			return
		}
		h.log.Info().Str("session", id).Str("op", "add_row").Msg("row added")
		writeMessage(w, http.StatusCreated, "New row added.")
	})
}

// DeleteRows removes the selected rows.
func (h *Handler) DeleteRows(w http.ResponseWriter, r *http.Request) {
	var req deleteRowsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}

	h.withSession(w, r, func(id string, store *rostergrid.Store) {
		if err := store.DeleteRows(req.Indices); err != nil {
			h.warn(id, "delete_rows", err)
			writeStoreError(w, err)
			return
		}
		h.log.Info().Str("session", id).Str("op", "delete_rows").Ints("indices", req.Indices).Msg("rows deleted")
		writeMessage(w, http.StatusOK, "Selected row(s) deleted.")
	})
}

// FilterOptions lists the distinct values of the filter column. Every
// option starts out selected.
func (h *Handler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(id string, store *rostergrid.Store) {
		column := h.filterColumn(r)
		options, err := store.UniqueValues(column)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if options == nil {
			options = []models.Value{}
		}
		writeJSON(w, http.StatusOK, optionsResponse{Column: column, Options: options, Selected: options})
	})
}

// Counts returns per-value row counts of the filter column over the
// filtered table.
func (h *Handler) Counts(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(id string, store *rostergrid.Store) {
		column := h.filterColumn(r)
		tbl, err := store.FilterBy(column, filterValues(r))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		buckets := views.CountBy(tbl, column)
		if buckets == nil {
			buckets = []models.CountBucket{}
		}
		writeJSON(w, http.StatusOK, countsResponse{Column: column, Buckets: buckets})
	})
}

// Treemap returns the hierarchy along ?path= columns over the full table.
func (h *Handler) Treemap(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(id string, store *rostergrid.Store) {
		path := r.URL.Query()["path"]
		if len(path) == 0 {
			path = h.cfg.TreemapPath
		}
		tbl := store.Table()
		for _, c := range path {
			if !tbl.HasColumn(c) {
				writeStoreError(w, rostergrid.NewOperationError("treemap", c, rostergrid.ErrUnknownColumn))
				return
			}
		}
		writeJSON(w, http.StatusOK, views.Treemap(tbl, path...))
	})
}

// Export downloads the table as an xlsx workbook. ?summary=true adds the
// count chart sheet for the filter column.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(id string, store *rostergrid.Store) {
		opts := rostergrid.ExportOptions{}
		if summary, _ := strconv.ParseBool(r.URL.Query().Get("summary")); summary {
			opts.SummaryColumn = h.filterColumn(r)
		}

		var buf bytes.Buffer
		if err := store.Export(&buf, opts); err != nil {
			h.log.Error().Err(err).Str("session", id).Msg("export failed")
			writeStoreError(w, err)
			return
		}

		w.Header().Set("Content-Type", rostergrid.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.cfg.DownloadName))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(buf.Bytes()); err != nil {
			h.log.Debug().Err(err).Str("session", id).Msg("export write failed")
		}
	})
}

// withSession looks up the session named in the route and runs fn while
// holding its lock.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, fn func(id string, store *rostergrid.Store)) {
	id := mux.Vars(r)["sessionID"]
	sess, ok := h.sessions.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(id, sess.store)
}

func (h *Handler) warn(id, op string, err error) {
	if rostergrid.IsWarning(err) {
		h.log.Warn().Str("session", id).Str("op", op).Err(err).Msg("rejected input")
		return
	}
	h.log.Error().Str("session", id).Str("op", op).Err(err).Msg("operation failed")
}

func (h *Handler) filterColumn(r *http.Request) string {
	if c := r.URL.Query().Get("column"); c != "" {
		return c
	}
	return h.cfg.FilterColumn
}

// filtered applies ?filter= values to the filter column. Without filter
// values the full table is returned, whatever the filter column.
func (h *Handler) filtered(store *rostergrid.Store, r *http.Request) (*models.Table, error) {
	allowed := filterValues(r)
	if len(allowed) == 0 {
		return store.Table(), nil
	}
	return store.FilterBy(h.filterColumn(r), allowed)
}

// filterValues reads ?filter= parameters. A value that parses as a number
// also matches numeric cells.
func filterValues(r *http.Request) []models.Value {
	var out []models.Value
	for _, raw := range r.URL.Query()["filter"] {
		out = append(out, models.String(raw))
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			out = append(out, models.Number(f))
		}
	}
	return out
}
