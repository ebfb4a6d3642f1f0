package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		query  string
		intent Intent
	}{
		{"show projects from nadeem & sons", IntentProjectBySource},
		{"projects brought by ali", IntentProjectBySource},
		{"show active projects", IntentProjectActive},
		{"ongoing projects", IntentProjectActive},
		{"completed projects this year", IntentProjectCompleted},
		{"show all projects", IntentProjectRecent},
		{"investments above 100000", IntentInvestmentThreshold},
		{"investments greater than 50,000", IntentInvestmentThreshold},
		{"list active investments", IntentInvestmentActive},
		{"show investments", IntentInvestmentRecent},
		{"how much rent in july", IntentExpenseRentMonth},
		{"rent paid in december", IntentExpenseRentMonth},
		{"show rent expenses", IntentExpenseRentRecent},
		{"utility expenses", IntentExpenseUtility},
		{"show expenses", IntentExpenseRecent},
		{"show all members", IntentUserListing},
		{"list users", IntentUserListing},
		{"give me an overview", IntentSummary},
		{"company summary", IntentSummary},
		{"hello there", IntentUnrecognized},
		{"", IntentUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.intent, Classify(tt.query), "query: %q", tt.query)
		})
	}
}

// The project branch outranks every other branch, so a query mentioning both
// projects and investments is answered as a project query.
func TestClassify_BranchPriority(t *testing.T) {
	assert.Equal(t, IntentProjectActive, Classify("active projects and investments"))
	assert.Equal(t, IntentInvestmentActive, Classify("active investments and expenses"))
}

// "from" alone decides the source sub-intent even when the query also says
// "active"; sub-intents are checked in order within a branch.
func TestClassify_SubIntentOrder(t *testing.T) {
	assert.Equal(t, IntentProjectBySource, Classify("active projects from acme"))
	assert.Equal(t, IntentExpenseRentMonth, Classify("rent expenses in march"))
	assert.Equal(t, IntentExpenseRentRecent, Classify("rent expenses"))
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "project-by-source", IntentProjectBySource.String())
	assert.Equal(t, "summary", IntentSummary.String())
	assert.Equal(t, "unrecognized", IntentUnrecognized.String())
}
