// Package assistant implements the natural-language query interpreter behind
// the dashboard's AI assistant. A free-text query is classified into an
// intent, typed parameters are extracted from the text, and the matching
// filtered query is dispatched against the repositories. The pipeline is
// stateless per call.
package assistant

import "strings"

// Intent is the classified category of a natural-language query.
type Intent int

const (
	IntentUnrecognized Intent = iota
	IntentProjectBySource
	IntentProjectActive
	IntentProjectCompleted
	IntentProjectRecent
	IntentInvestmentThreshold
	IntentInvestmentActive
	IntentInvestmentRecent
	IntentExpenseRentMonth
	IntentExpenseRentRecent
	IntentExpenseUtility
	IntentExpenseRecent
	IntentUserListing
	IntentSummary
)

var intentNames = map[Intent]string{
	IntentUnrecognized:        "unrecognized",
	IntentProjectBySource:     "project-by-source",
	IntentProjectActive:       "project-active",
	IntentProjectCompleted:    "project-completed",
	IntentProjectRecent:       "project-recent",
	IntentInvestmentThreshold: "investment-threshold",
	IntentInvestmentActive:    "investment-active",
	IntentInvestmentRecent:    "investment-recent",
	IntentExpenseRentMonth:    "expense-rent-month",
	IntentExpenseRentRecent:   "expense-rent-recent",
	IntentExpenseUtility:      "expense-utility",
	IntentExpenseRecent:       "expense-recent",
	IntentUserListing:         "user-listing",
	IntentSummary:             "summary",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// rule pairs a trigger predicate with the intent it selects.
type rule struct {
	intent Intent
	match  func(query string) bool
}

// rules is evaluated in order and the first match wins. Branch priority is
// projects > investments > expenses > users > summary, with each sub-intent
// listed before its branch default.
var rules = []rule{
	{IntentProjectBySource, func(q string) bool {
		return isProjectQuery(q) && containsAny(q, "from", "by", "brought")
	}},
	{IntentProjectActive, func(q string) bool {
		return isProjectQuery(q) && containsAny(q, "active", "ongoing")
	}},
	{IntentProjectCompleted, func(q string) bool {
		return isProjectQuery(q) && strings.Contains(q, "completed")
	}},
	{IntentProjectRecent, isProjectQuery},
	{IntentInvestmentThreshold, func(q string) bool {
		return isInvestmentQuery(q) && containsAny(q, "above", "greater", ">")
	}},
	{IntentInvestmentActive, func(q string) bool {
		return isInvestmentQuery(q) && strings.Contains(q, "active")
	}},
	{IntentInvestmentRecent, isInvestmentQuery},
	{IntentExpenseRentMonth, func(q string) bool {
		return isExpenseQuery(q) && strings.Contains(q, "rent") && containsMonth(q)
	}},
	{IntentExpenseRentRecent, func(q string) bool {
		return isExpenseQuery(q) && strings.Contains(q, "rent")
	}},
	{IntentExpenseUtility, func(q string) bool {
		return isExpenseQuery(q) && containsAny(q, "utility", "utilities")
	}},
	{IntentExpenseRecent, isExpenseQuery},
	{IntentUserListing, func(q string) bool {
		return containsAny(q, "user", "member", "employee")
	}},
	{IntentSummary, func(q string) bool {
		return containsAny(q, "summary", "overview", "dashboard")
	}},
}

// Classify maps a lower-cased query to an intent. It is total over all
// strings; anything that matches no rule yields IntentUnrecognized.
func Classify(query string) Intent {
	for _, r := range rules {
		if r.match(query) {
			return r.intent
		}
	}
	return IntentUnrecognized
}

func isProjectQuery(q string) bool {
	return strings.Contains(q, "project")
}

func isInvestmentQuery(q string) bool {
	return strings.Contains(q, "investment")
}

func isExpenseQuery(q string) bool {
	return containsAny(q, "expense", "rent", "paid")
}

func containsAny(q string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
