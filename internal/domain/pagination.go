package domain

import "encoding/json"

// Pagination is the list-response paging metadata. Backends that omit
// it entirely leave the pointer nil; that is not an error.
type Pagination struct {
	Page      int   `json:"Page"`
	Limit     int   `json:"Limit"`
	TotalPage int   `json:"TotalPage"`
	TotalRows int64 `json:"TotalRows"`
}

// UnmarshalJSON accepts the legacy field naming (totalPages, total)
// emitted by older backend versions. Case-only variants such as
// page/Page are already covered by encoding/json's case-insensitive
// field matching.
func (p *Pagination) UnmarshalJSON(data []byte) error {
	type alias Pagination
	aux := struct {
		*alias
		LegacyTotalPages *int   `json:"totalPages"`
		LegacyTotal      *int64 `json:"total"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.TotalPage == 0 && aux.LegacyTotalPages != nil {
		p.TotalPage = *aux.LegacyTotalPages
	}
	if p.TotalRows == 0 && aux.LegacyTotal != nil {
		p.TotalRows = *aux.LegacyTotal
	}
	return nil
}
