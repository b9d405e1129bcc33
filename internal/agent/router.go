package agent

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Keyword tables for routing. Matching is case-insensitive substring
// containment, so "restocking" still hits "restock".
var (
	schedulerKeywords = []string{
		"schedule", "calendar", "meeting", "appointment", "remind",
		"event", "book a", "agenda",
	}
	predictionKeywords = []string{
		"what if", "predict", "forecast", "scenario", "simulate",
		"projection", "project the",
	}
	inventoryKeywords = []string{
		"inventory", "stock", "restock", "reorder", "warehouse",
		"supplier", "sku", "out of stock", "dead stock",
	}
	salesKeywords = []string{
		"sales", "revenue", "sold", "orders", "customer", "top product",
		"best seller", "transaction",
	}
	marketingKeywords = []string{
		"marketing", "campaign", "promotion", "advertis", "social media",
		"discount", "brand", "engagement",
	}
	generalKeywords = []string{
		"overview", "summary", "report", "business", "overall",
		"database", "query", "table",
	}
)

// Router picks the agent to handle a query by keyword score.
type Router struct {
	scheduler  Agent
	prediction Agent
	inventory  Agent
	sales      Agent
	marketing  Agent
	general    Agent
}

func NewRouter(scheduler, prediction, inventory, sales, marketing, general Agent) *Router {
	return &Router{
		scheduler:  scheduler,
		prediction: prediction,
		inventory:  inventory,
		sales:      sales,
		marketing:  marketing,
		general:    general,
	}
}

func score(query string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(query, kw) {
			n++
		}
	}
	return n
}

// Route selects the agent for a query. Scheduler and prediction intents
// take precedence since their keywords are unambiguous. Among the domain
// agents the highest score wins; general breaks ties, then inventory beats
// sales beats marketing. A query with no keyword hits at all goes to
// general.
func (r *Router) Route(query string) Agent {
	q := strings.ToLower(query)

	if score(q, schedulerKeywords) > 0 {
		return r.logged(q, r.scheduler)
	}
	if score(q, predictionKeywords) > 0 {
		return r.logged(q, r.prediction)
	}

	inv := score(q, inventoryKeywords)
	sal := score(q, salesKeywords)
	mkt := score(q, marketingKeywords)
	gen := score(q, generalKeywords)

	best := max4(inv, sal, mkt, gen)
	switch {
	case best == 0, gen == best:
		return r.logged(q, r.general)
	case inv == best:
		return r.logged(q, r.inventory)
	case sal == best:
		return r.logged(q, r.sales)
	default:
		return r.logged(q, r.marketing)
	}
}

func (r *Router) logged(query string, a Agent) Agent {
	log.Debug().Str("agent", a.Name()).Str("query", query).Msg("routed query")
	return a
}

func max4(a, b, c, d int) int {
	m := a
	for _, v := range []int{b, c, d} {
		if v > m {
			m = v
		}
	}
	return m
}
