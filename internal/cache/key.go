// Package cache is the synchronization layer between the console and
// the upstream resource operations: query results are cached under
// hierarchical keys, concurrent identical reads share one in-flight
// fetch, and successful mutations invalidate every cached query of the
// affected resource kind.
package cache

import "strconv"

// Kind names a cached resource family. Invalidation operates on whole
// kinds: any successful mutation of a guest marks every cached guest
// query stale, regardless of which event scoped it.
type Kind string

const (
	KindEvents Kind = "events"
	KindGuests Kind = "guests"
	KindUsers  Kind = "users"
)

// Key identifies one cached query: resource kind, list/detail
// qualifier, then the parameters distinguishing this query from its
// siblings. Two reads with equal keys share one cached result and one
// in-flight request.
type Key struct {
	Kind      Kind
	Qualifier string
	Params    string
}

const (
	qualifierList   = "list"
	qualifierDetail = "detail"
)

// ListKey builds the key for a list query. Params must be a canonical
// rendering (sorted query-string form) so equal parameter sets collide.
func ListKey(kind Kind, params string) Key {
	return Key{Kind: kind, Qualifier: qualifierList, Params: params}
}

// DetailKey builds the key for a single-record query.
func DetailKey(kind Kind, id int64) Key {
	return Key{Kind: kind, Qualifier: qualifierDetail, Params: strconv.FormatInt(id, 10)}
}

func (k Key) String() string {
	return string(k.Kind) + ":" + k.Qualifier + ":" + k.Params
}

// kindPrefix is the store-key prefix shared by every query of a kind.
func kindPrefix(kind Kind) string {
	return string(kind) + ":"
}
