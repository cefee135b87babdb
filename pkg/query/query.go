package query

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	// DefaultLimit is the page size when the client does not send one.
	DefaultLimit = 10
	// MaxLimit caps how many rows any listing can request.
	MaxLimit = 100

	paramSearchTerm = "searchTerm"
	paramSort       = "sort"
	paramPage       = "page"
	paramLimit      = "limit"
	paramFields     = "fields"
)

var reservedParams = map[string]struct{}{
	paramSearchTerm: {},
	paramSort:       {},
	paramPage:       {},
	paramLimit:      {},
	paramFields:     {},
}

var columnPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Meta carries pagination metadata for a listing response.
type Meta struct {
	Total     int64 `json:"total"`
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	TotalPage int   `json:"totalPage"`
}

// Builder composes search, filter, sort, pagination, and field projection on
// top of a GORM query, driven by raw URL query parameters.
type Builder struct {
	base   *gorm.DB
	values url.Values

	sortColumns []string
	selectCols  []string
	omitCols    []string
	page        int
	limit       int
	err         error
}

// New wraps the provided GORM query. The query should already carry any
// fixed conditions (for example the soft-delete exclusion).
func New(db *gorm.DB, values url.Values) *Builder {
	return &Builder{
		base:   db,
		values: values,
		page:   1,
		limit:  DefaultLimit,
	}
}

// Search applies a case-insensitive substring match of the searchTerm
// parameter across the given columns.
func (b *Builder) Search(columns ...string) *Builder {
	term := strings.TrimSpace(b.values.Get(paramSearchTerm))
	if term == "" || len(columns) == 0 {
		return b
	}

	pattern := "%" + strings.ToLower(term) + "%"
	clauses := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, col := range columns {
		column, ok := normalizeColumn(col)
		if !ok {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", column))
		args = append(args, pattern)
	}
	if len(clauses) > 0 {
		b.base = b.base.Where(strings.Join(clauses, " OR "), args...)
	}
	return b
}

// Filter turns every non-reserved query parameter into an equality condition.
// Parameter names are normalized to snake_case columns and must survive the
// column pattern check, which also keeps arbitrary input out of the SQL text.
func (b *Builder) Filter() *Builder {
	for key, vals := range b.values {
		if _, reserved := reservedParams[key]; reserved {
			continue
		}
		if len(vals) == 0 || strings.TrimSpace(vals[0]) == "" {
			continue
		}
		column, ok := normalizeColumn(key)
		if !ok {
			continue
		}
		b.base = b.base.Where(fmt.Sprintf("%s = ?", column), vals[0])
	}
	return b
}

// Sort parses the comma-separated sort parameter; a leading '-' selects
// descending order. Defaults to newest first.
func (b *Builder) Sort() *Builder {
	raw := strings.TrimSpace(b.values.Get(paramSort))
	if raw == "" {
		raw = "-created_at"
	}

	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		direction := "ASC"
		if strings.HasPrefix(field, "-") {
			direction = "DESC"
			field = field[1:]
		}
		column, ok := normalizeColumn(field)
		if !ok {
			continue
		}
		b.sortColumns = append(b.sortColumns, column+" "+direction)
	}
	return b
}

// Paginate reads page/limit, clamping to sane bounds.
func (b *Builder) Paginate() *Builder {
	if page, err := parsePositiveInt(b.values.Get(paramPage)); err == nil && page > 0 {
		b.page = page
	}
	if limit, err := parsePositiveInt(b.values.Get(paramLimit)); err == nil && limit > 0 {
		b.limit = limit
	}
	if b.limit > MaxLimit {
		b.limit = MaxLimit
	}
	return b
}

// Fields applies projection: a comma-separated include list, or exclusions
// with a '-' prefix. Mixing both keeps only the include behavior.
func (b *Builder) Fields() *Builder {
	raw := strings.TrimSpace(b.values.Get(paramFields))
	if raw == "" {
		return b
	}

	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		exclude := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		column, ok := normalizeColumn(field)
		if !ok {
			continue
		}
		if exclude {
			b.omitCols = append(b.omitCols, column)
		} else {
			b.selectCols = append(b.selectCols, column)
		}
	}
	return b
}

// ForceLimit pins the page size regardless of what the client sent.
func (b *Builder) ForceLimit(limit int) *Builder {
	if limit > 0 {
		b.limit = limit
	}
	return b
}

// Find counts the filtered set, then loads the requested page into dest and
// returns the pagination metadata.
func (b *Builder) Find(dest any) (Meta, error) {
	if b.err != nil {
		return Meta{}, b.err
	}

	var total int64
	if err := b.base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Meta{}, err
	}

	q := b.base.Session(&gorm.Session{})
	for _, order := range b.sortColumns {
		q = q.Order(order)
	}
	if len(b.selectCols) > 0 {
		q = q.Select(withID(b.selectCols))
	} else if len(b.omitCols) > 0 {
		q = q.Omit(b.omitCols...)
	}
	q = q.Offset((b.page - 1) * b.limit).Limit(b.limit)

	if err := q.Find(dest).Error; err != nil {
		return Meta{}, err
	}

	return Meta{
		Total:     total,
		Page:      b.page,
		Limit:     b.limit,
		TotalPage: totalPages(total, b.limit),
	}, nil
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}

func withID(cols []string) []string {
	for _, col := range cols {
		if col == "id" {
			return cols
		}
	}
	return append([]string{"id"}, cols...)
}

func parsePositiveInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty")
	}
	return strconv.Atoi(raw)
}

// normalizeColumn maps a client-facing camelCase field name onto its
// snake_case column and rejects anything that is not a plain identifier.
func normalizeColumn(field string) (string, bool) {
	column := toSnakeCase(strings.TrimSpace(field))
	if !columnPattern.MatchString(column) {
		return "", false
	}
	return column, true
}

func toSnakeCase(field string) string {
	var sb strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
