package order

import (
	"strings"
	"time"
)

type Tab string

const (
	TabAccepted Tab = "accepted"
	TabPacked   Tab = "packed"
	TabDelivery Tab = "delivery"
	TabAll      Tab = "all"
)

// Query is one filtering request against the unified list.
type Query struct {
	Tab    Tab
	Search string
	From   *time.Time
	To     *time.Time
}

// Filter derives the visible subset of orders from the current tab,
// free-text search and date range. It is a pure function, safe to call on
// every render. Records without items are excluded before any predicate
// runs; a record is included only when all three predicates pass.
func Filter(orders []*View, q Query) []*View {
	tab := q.Tab
	if tab == "" {
		tab = TabAll
	}

	out := make([]*View, 0, len(orders))
	for _, o := range orders {
		if o == nil || len(o.Items) == 0 {
			continue
		}
		if !matchesTab(o, tab) {
			continue
		}
		if !matchesSearch(o, q.Search) {
			continue
		}
		if !matchesDateRange(o, tab, q.From, q.To) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matchesTab(o *View, tab Tab) bool {
	switch tab {
	case TabAccepted:
		return o.Status == StatusProcessing || o.Status == StatusAccepted
	case TabPacked:
		return o.Status == StatusPacking
	case TabDelivery:
		return o.Status == StatusShipped
	case TabAll:
		return true
	}
	return false
}

func matchesSearch(o *View, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)

	if strings.Contains(strings.ToLower(o.CustomerEmail), term) ||
		strings.Contains(strings.ToLower(o.CustomerPhone), term) ||
		strings.Contains(strings.ToLower(o.CustomerName), term) ||
		strings.Contains(strings.ToLower(o.ReferenceCode), term) {
		return true
	}
	for _, it := range o.Items {
		if strings.Contains(strings.ToLower(it.Name), term) {
			return true
		}
	}
	return false
}

// matchesDateRange applies only on the all tab; the other tabs are
// operational queues where date filtering is not meaningful. Both bounds
// are inclusive and either alone is a valid one-sided filter.
func matchesDateRange(o *View, tab Tab, from, to *time.Time) bool {
	if tab != TabAll {
		return true
	}
	if from != nil && o.OrderDate.Before(*from) {
		return false
	}
	if to != nil && o.OrderDate.After(*to) {
		return false
	}
	return true
}
