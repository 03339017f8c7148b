package upstream

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"

	"github.com/Rawuh-in/console/internal/domain"
)

// envelope is the backend response wrapper. Older backend versions emit
// lower-cased field names; encoding/json's case-insensitive matching
// absorbs those, and Pagination itself normalizes its renamed fields.
type envelope struct {
	Error      bool               `json:"Error"`
	Message    string             `json:"Message"`
	Data       json.RawMessage    `json:"Data"`
	Pagination *domain.Pagination `json:"Pagination"`
}

// decodeData decodes the envelope payload into v. An absent payload is
// a decode error for operations that expect a record: the console never
// substitutes default data for a genuine resource.
func (e *envelope) decodeData(v interface{}) error {
	if len(e.Data) == 0 {
		return decodeError(errMissingData)
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return decodeError(err)
	}
	return nil
}

var errMissingData = errors.New("response envelope has no data")

// ListParams are the optional query parameters accepted by every list
// endpoint. The zero value means "backend defaults".
type ListParams struct {
	Page  int
	Limit int
	Sort  string
	Dir   string
	Query string
}

// Values renders the parameters as a query string. url.Values.Encode
// sorts keys, so equal parameter sets always render identically; the
// cache layer relies on that for key identity.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	if p.Dir != "" {
		v.Set("dir", p.Dir)
	}
	if p.Query != "" {
		v.Set("query", p.Query)
	}
	return v
}

// CacheKey is the canonical parameter rendering used by the query
// cache.
func (p ListParams) CacheKey() string {
	return p.Values().Encode()
}
