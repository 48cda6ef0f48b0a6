package orders

import (
	"encoding/json"
	"sort"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
)

// Stats are the running totals for one restaurant.
type Stats struct {
	Restaurant string
	// Orders maps item id to cumulative quantity.
	Orders       map[string]int
	OrderCount   int
	TotalPrice   decimal.Decimal
	AverageOrder decimal.Decimal
	// PopularItem is the id of the item with the greatest cumulative
	// quantity, or "" when nothing has been ordered.
	PopularItem string

	seq int
}

type statsJSON struct {
	Restaurant   string         `json:"restaurant"`
	Orders       map[string]int `json:"orders"`
	OrderCount   int            `json:"numberOfOrders"`
	TotalPrice   json.Number    `json:"totalPrice"`
	AverageOrder json.Number    `json:"averageOrder"`
	PopularItem  string         `json:"popularItem"`
}

// MarshalJSON writes money as JSON numbers rather than decimal's quoted strings.
func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(statsJSON{
		Restaurant:   s.Restaurant,
		Orders:       s.Orders,
		OrderCount:   s.OrderCount,
		TotalPrice:   json.Number(s.TotalPrice.String()),
		AverageOrder: json.Number(s.AverageOrder.String()),
		PopularItem:  s.PopularItem,
	})
}

func (s *Stats) clone() Stats {
	c := *s
	c.Orders = make(map[string]int, len(s.Orders))
	for id, q := range s.Orders {
		c.Orders[id] = q
	}
	return c
}

// Aggregator accumulates orders per restaurant. It is safe for concurrent use.
type Aggregator struct {
	mu    sync.RWMutex
	stats map[string]*Stats
	seq   int
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{stats: make(map[string]*Stats)}
}

// AddOrder folds one order into its restaurant's statistics and returns the
// updated statistics.
func (a *Aggregator) AddOrder(o Order) Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.stats[o.Restaurant]
	if !ok {
		a.seq++
		s = &Stats{
			Restaurant: o.Restaurant,
			Orders:     make(map[string]int, len(o.Items)),
			TotalPrice: decimal.Zero,
			seq:        a.seq,
		}
		a.stats[o.Restaurant] = s
	}

	for id, q := range o.Items {
		s.Orders[id] += q
	}
	s.OrderCount++
	s.TotalPrice = s.TotalPrice.Add(o.TotalPrice)
	s.AverageOrder = s.TotalPrice.Div(decimal.NewFromInt(int64(s.OrderCount)))
	s.PopularItem = popularItem(s.Orders)

	return s.clone()
}

// Get returns the statistics of one restaurant.
func (a *Aggregator) Get(restaurant string) (Stats, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s, ok := a.stats[restaurant]
	if !ok {
		return Stats{}, false
	}
	return s.clone(), true
}

// Snapshot returns every restaurant's statistics in the order each
// restaurant received its first order.
func (a *Aggregator) Snapshot() []Stats {
	a.mu.RLock()
	out := make([]Stats, 0, len(a.stats))
	for _, s := range a.stats {
		out = append(out, s.clone())
	}
	a.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Len returns the number of restaurants with at least one order.
func (a *Aggregator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.stats)
}

// Reset drops all statistics.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats = make(map[string]*Stats)
	a.seq = 0
}

// popularItem picks the id with the largest quantity. Ties go to the smaller
// id so the result does not depend on map iteration order. Items never
// ordered in a positive quantity are not candidates.
func popularItem(quantities map[string]int) string {
	best, bestQty, found := "", 0, false
	for id, q := range quantities {
		if q <= 0 {
			continue
		}
		if !found || q > bestQty || (q == bestQty && lessID(id, best)) {
			best, bestQty, found = id, q, true
		}
	}
	return best
}

// lessID orders integer ids numerically and everything else lexically, with
// integer ids first.
func lessID(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		if ai != bi {
			return ai < bi
		}
		return a < b
	case aerr == nil:
		return true
	case berr == nil:
		return false
	default:
		return a < b
	}
}
