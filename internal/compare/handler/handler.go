package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"tabcompare-service/internal/compare/model"
	cmpSvc "tabcompare-service/internal/compare/service"
	"tabcompare-service/internal/config"
	"tabcompare-service/internal/export"
	"tabcompare-service/internal/fileio"
	"tabcompare-service/internal/middleware"
)

type compareResponse struct {
	model.Result
	TableA        string               `json:"tableA"`
	TableB        string               `json:"tableB"`
	DetailsColumn string               `json:"detailsColumn,omitempty"`
	Details       []model.ColumnDetail `json:"details,omitempty"`
}

// Compare возвращает http.HandlerFunc для r.Post("/compare", ...).
func Compare(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := requestLogger(logger, r)
		req, res, ok := run(w, r, cfg, log)
		if !ok {
			return
		}

		out := compareResponse{Result: res, TableA: req.A.Name, TableB: req.B.Name}
		if col := cmpSvc.NormalizeColumnName(req.Column, req.Options); col != "" {
			details, err := res.Report.FilterByColumn(col)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, err)
				return
			}
			out.DetailsColumn = col
			out.Details = details
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			log.Error().Err(err).Msg("write json")
		}
	}
}

// Export runs the same comparison and answers with the two-sheet workbook.
func Export(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := requestLogger(logger, r)
		_, res, ok := run(w, r, cfg, log)
		if !ok {
			return
		}

		f, err := export.Build(res.Report)
		if err != nil {
			log.Error().Err(err).Msg("build workbook")
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		defer f.Close()

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="comparison.xlsx"`)
		w.Header().Set("Cache-Control", "no-store")
		if _, err := f.WriteTo(w); err != nil {
			log.Error().Err(err).Msg("write workbook")
		}
	}
}

// Sheets lists the sheets of an uploaded workbook so the caller can pick one.
func Sheets(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := requestLogger(logger, r)
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		f, h, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		defer f.Close()

		names, err := fileio.SheetNames(f, h.Filename)
		if err != nil {
			log.Warn().Err(err).Str("file", h.Filename).Msg("list sheets")
			writeError(w, http.StatusBadRequest, err)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{"file": h.Filename, "sheets": names})
	}
}

func run(w http.ResponseWriter, r *http.Request, cfg config.Config, log zerolog.Logger) (request, model.Result, bool) {
	start := time.Now()
	defer r.Body.Close()

	req, err := parseRequest(r, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("bad request")
		writeError(w, http.StatusBadRequest, err)
		return request{}, model.Result{}, false
	}

	res, err := cmpSvc.Run(req.A, req.B, req.Keys, req.Options)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrConfiguration) {
			status = http.StatusUnprocessableEntity
		}
		log.Warn().Err(err).Strs("keys", req.Keys).Msg("compare rejected")
		writeError(w, status, err)
		return request{}, model.Result{}, false
	}

	for _, wr := range res.Warnings {
		log.Warn().
			Str("kind", string(wr.Kind)).
			Str("table", wr.Table).
			Int("rows", len(wr.Rows)).
			Strs("columns", wr.Columns).
			Msg(wr.Message)
	}
	log.Info().
		Str("tableA", req.A.Name).
		Str("tableB", req.B.Name).
		Int("rowsA", res.RowsA).
		Int("rowsB", res.RowsB).
		Int("common", len(res.Partition.Common)).
		Int("onlyA", len(res.Partition.OnlyInA)).
		Int("onlyB", len(res.Partition.OnlyInB)).
		Int("differences", res.TotalDifferences()).
		Dur("elapsed", time.Since(start)).
		Msg("compare done")
	return req, res, true
}

func requestLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return logger.With().Str("rid", rid).Logger()
	}
	return logger
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
