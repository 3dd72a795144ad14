// Package resource shapes API output the way the admin endpoints want
// it: a transformer per model deciding exactly which fields leave the
// building, wrapped in a data envelope with optional pagination.
//
//	type UserResource struct{ resource.Base }
//	func (UserResource) ToArray(v interface{}) resource.Map { ... }
//
//	resource.CollectionOf(UserResource{}, users).
//	    WithPagination(pagination).
//	    Respond(w)
package resource

import (
	"encoding/json"
	"net/http"

	"github.com/muthuvel/santhai/pkg/orm"
)

// Map is the transformed shape of one model.
type Map = map[string]interface{}

// Transformer turns one model instance into a Map.
type Transformer interface {
	ToArray(v interface{}) Map
}

// Base is embedded by concrete resources.
type Base struct{}

// Resource pairs a single model with its transformer.
type Resource struct {
	transformer Transformer
	data        interface{}
	meta        Map
}

// New wraps one model instance.
func New(t Transformer, data interface{}) *Resource {
	return &Resource{transformer: t, data: data}
}

// WithMeta adds extra envelope metadata.
func (r *Resource) WithMeta(meta Map) *Resource {
	r.meta = meta
	return r
}

// MarshalJSON lets a Resource nest inside another payload.
func (r *Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.transformer.ToArray(r.data))
}

// Respond writes {"data": ...} with status 200.
func (r *Resource) Respond(w http.ResponseWriter) {
	out := Map{"data": r.transformer.ToArray(r.data)}
	if r.meta != nil {
		out["meta"] = r.meta
	}
	writeJSON(w, http.StatusOK, out)
}

// Collection pairs a model slice with a transformer.
type Collection struct {
	transformer Transformer
	items       interface{}
	pagination  *orm.Pagination
	meta        Map
}

// CollectionOf wraps a []Model slice.
func CollectionOf(t Transformer, items interface{}) *Collection {
	return &Collection{transformer: t, items: items}
}

// WithPagination attaches the page envelope from the repository.
func (c *Collection) WithPagination(p orm.Pagination) *Collection {
	c.pagination = &p
	return c
}

// WithMeta adds extra envelope metadata.
func (c *Collection) WithMeta(meta Map) *Collection {
	c.meta = meta
	return c
}

// Respond writes {"data": [...], "pagination": {...}} with status 200.
// Items pass through a JSON round trip so the transformer sees the
// same generic maps it would get from any source.
func (c *Collection) Respond(w http.ResponseWriter) {
	raw, _ := json.Marshal(c.items)
	var rawSlice []json.RawMessage
	_ = json.Unmarshal(raw, &rawSlice)

	var result []interface{}
	for _, item := range rawSlice {
		var v interface{}
		_ = json.Unmarshal(item, &v)
		result = append(result, c.transformer.ToArray(v))
	}

	out := Map{"data": result}
	if c.pagination != nil {
		out["pagination"] = c.pagination
	}
	if c.meta != nil {
		out["meta"] = c.meta
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
