// Package orm provides small query helpers on top of GORM: offset/limit
// pagination with metadata, and a cache-through read for hot queries.
package orm

import (
	"time"

	"github.com/muthuvel/santhai/pkg/cache"
	"gorm.io/gorm"
)

// Pagination is the metadata returned alongside a paginated result set.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Paginate runs the query with LIMIT/OFFSET and fills dest, returning the
// pagination metadata. page starts at 1; perPage falls back to 20.
func Paginate(q *gorm.DB, dest interface{}, page, perPage int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * perPage
	if err := q.Offset(offset).Limit(perPage).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int(total) / perPage
	if int(total)%perPage != 0 {
		totalPages++
	}

	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Cached serves dest from Redis when the key is hot, otherwise runs the
// query and stores the result for ttl. A cache outage degrades to a plain
// query, never an error.
func Cached(key string, ttl time.Duration, dest interface{}, query func(dest interface{}) error) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := query(dest); err != nil {
		return err
	}

	cache.Set(key, dest, ttl) //nolint:errcheck
	return nil
}
