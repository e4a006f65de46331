// internal/api/types.go
package api

// CodeResult is the body of GET /code/get.
// Both fields are nullable on the wire.
type CodeResult struct {
	Content  *string `json:"content"`
	UpdateAt *int64  `json:"update_at"` // unix seconds
}

// CodeUpdate is the body of PATCH /code/patch.
type CodeUpdate struct {
	Content *string `json:"content"`
}
