package adapthttp

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"weighttracker/internal/domain"
)

var templateFuncs = template.FuncMap{
	"day":  fmtDay,
	"f1":   fmtFloat(1),
	"f2":   fmtFloat(2),
	"json": jsonJS,
}

// fmtDay formats time.Time or *time.Time as YYYY-MM-DD; nil renders empty.
func fmtDay(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format(domain.DayFormat)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format(domain.DayFormat)
	}
	return ""
}

// fmtFloat formats float64 or *float64 values with the given precision;
// nil pointers render as an empty string.
func fmtFloat(prec int) func(v any) string {
	return func(v any) string {
		switch x := v.(type) {
		case float64:
			return strconv.FormatFloat(x, 'f', prec, 64)
		case *float64:
			if x == nil {
				return ""
			}
			return strconv.FormatFloat(*x, 'f', prec, 64)
		}
		return ""
	}
}

func jsonJS(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return template.JS(b)
}

// view is the common render model shared by every page template.
type view struct {
	Flash   *Flash
	Account *domain.Account
	Data    any
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	v := view{
		Flash:   popFlash(w, r),
		Account: accountFromContext(r),
		Data:    data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.pages[name].ExecuteTemplate(w, "layout", v); err != nil {
		s.logger.Error("render", zap.String("template", name), zap.Error(err))
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("internal error", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// parseDay parses a YYYY-MM-DD form field.
func parseDay(value string) (time.Time, error) {
	return time.ParseInLocation(domain.DayFormat, value, time.UTC)
}

// parseFloatField parses an optional float form field, nil when absent or
// unparseable (matching form semantics: bad numbers clear the field).
func parseFloatField(r *http.Request, key string) *float64 {
	raw := r.PostFormValue(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// pathID parses the {id} path segment; ok is false for non-numeric values.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}
