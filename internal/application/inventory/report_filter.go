package inventory

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

const dateLayout = "2006-01-02"

// ReportFilter criterios ya validados del reporte. From/To nil = sin límite de fechas.
type ReportFilter struct {
	From       *time.Time
	To         *time.Time
	CategoryID string
	Search     string
	OrderBy    string
}

// ParseReportFilter convierte los parámetros de consulta en un filtro. Las fechas se
// interpretan en loc: el inicio es el comienzo del día y el fin el último instante del día.
// date=D equivale a start_date=end_date=D. Solo una de start_date/end_date es un error.
func ParseReportFilter(q dto.ReportQuery, loc *time.Location) (ReportFilter, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := ReportFilter{
		CategoryID: strings.TrimSpace(q.CategoryID),
		Search:     strings.TrimSpace(q.Search),
		OrderBy:    q.OrderBy,
	}

	start, end := strings.TrimSpace(q.StartDate), strings.TrimSpace(q.EndDate)
	if d := strings.TrimSpace(q.Date); d != "" {
		if start != "" || end != "" {
			return ReportFilter{}, domain.ErrInvalidDateRange
		}
		start, end = d, d
	}
	if start == "" && end == "" {
		return f, nil
	}
	if start == "" || end == "" {
		return ReportFilter{}, domain.ErrInvalidDateRange
	}

	from, err := parseBoundary(start, loc, false)
	if err != nil {
		return ReportFilter{}, err
	}
	to, err := parseBoundary(end, loc, true)
	if err != nil {
		return ReportFilter{}, err
	}
	if from.After(to) {
		return ReportFilter{}, domain.ErrInvalidDateRange
	}
	f.From, f.To = &from, &to
	return f, nil
}

// parseBoundary acepta YYYY-MM-DD o RFC3339. Con fecha sola y endOfDay devuelve el último instante del día.
func parseBoundary(s string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	day, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDateRange
	}
	if endOfDay {
		return day.AddDate(0, 0, 1).Add(-time.Microsecond), nil
	}
	return day, nil
}

// CacheKey clave canónica del filtro para el caché de reportes.
func (f ReportFilter) CacheKey() string {
	var b strings.Builder
	writeTime := func(t *time.Time) {
		if t != nil {
			b.WriteString(t.UTC().Format(time.RFC3339Nano))
		}
		b.WriteByte('|')
	}
	writeTime(f.From)
	writeTime(f.To)
	b.WriteString(f.CategoryID)
	b.WriteByte('|')
	b.WriteString(strings.ToLower(f.Search))
	b.WriteByte('|')
	b.WriteString(f.OrderBy)
	sum := sha256.Sum256([]byte(b.String()))
	return "stock:" + hex.EncodeToString(sum[:16])
}
