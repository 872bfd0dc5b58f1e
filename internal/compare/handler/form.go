package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"tabcompare-service/internal/compare/model"
	"tabcompare-service/internal/config"
	"tabcompare-service/internal/fileio"
	"tabcompare-service/internal/table"
)

const maxMemory = 32 << 20

// request is everything a comparison run needs, pulled out of the form.
type request struct {
	A, B    table.Table
	Keys    []string
	Options model.Options
	Column  string
}

// badRequest marks input errors (missing/unreadable files) as opposed to
// configuration errors of the run itself.
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

func parseRequest(r *http.Request, cfg config.Config) (request, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return request{}, badRequest{fmt.Errorf("bad multipart form: %w", err)}
	}

	a, err := readFormTable(r, "fileA", fileio.ReadOptions{
		Sheet:        r.FormValue("sheet_a"),
		HeaderRow:    config.ParseInt(r.FormValue("a_header_row"), 1),
		DecimalComma: config.ParseBool(r.FormValue("decimal_comma"), cfg.DecimalComma),
	})
	if err != nil {
		return request{}, err
	}
	b, err := readFormTable(r, "fileB", fileio.ReadOptions{
		Sheet:        r.FormValue("sheet_b"),
		HeaderRow:    config.ParseInt(r.FormValue("b_header_row"), 1),
		DecimalComma: config.ParseBool(r.FormValue("decimal_comma"), cfg.DecimalComma),
	})
	if err != nil {
		return request{}, err
	}

	// Опции (дефолты из конфига)
	opt := model.Options{
		IgnoreCase:       config.ParseBool(r.FormValue("ignore_case"), cfg.Defaults.IgnoreCase),
		IgnoreWhitespace: config.ParseBool(r.FormValue("ignore_whitespace"), cfg.Defaults.IgnoreWhitespace),
		NumericTolerance: cfg.Defaults.NumericTolerance,
	}
	if s := strings.TrimSpace(r.FormValue("numeric_tolerance")); s != "" {
		// невалидное значение не подменяем дефолтом: Validate вернёт ошибку
		opt.NumericTolerance = config.ParseFloat(s, -1)
	}

	return request{
		A:       a,
		B:       b,
		Keys:    formKeys(r.MultipartForm),
		Options: opt,
		Column:  strings.TrimSpace(r.FormValue("column")),
	}, nil
}

func readFormTable(r *http.Request, field string, opts fileio.ReadOptions) (table.Table, error) {
	f, h, err := r.FormFile(field)
	if err != nil {
		return table.Table{}, badRequest{fmt.Errorf("missing %s: %w", field, err)}
	}
	defer f.Close()
	t, err := fileio.ReadTable(f, h.Filename, opts)
	if err != nil {
		return table.Table{}, badRequest{fmt.Errorf("failed to read %s: %w", field, err)}
	}
	return t, nil
}

// formKeys accepts repeated "keys" fields as well as comma separated lists.
func formKeys(form *multipart.Form) []string {
	if form == nil {
		return nil
	}
	var out []string
	for _, v := range form.Value["keys"] {
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				out = append(out, k)
			}
		}
	}
	return out
}
