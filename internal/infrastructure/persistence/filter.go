package persistence

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fieldsales/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// identifierPattern limits order-by columns to plain identifiers so filter
// input can never inject SQL.
var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// applyFilter applies pagination and ordering from a shared.Filter to a
// GORM query. Unknown or unsafe order columns fall back to created_at.
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := strings.ToLower(filter.OrderBy)
	if !identifierPattern.MatchString(orderBy) {
		orderBy = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", orderBy, dir))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
