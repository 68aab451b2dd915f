package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedCounts(t *testing.T) {
	r := &Result{Domains: map[string]int{
		"c.test": 2,
		"a.test": 5,
		"b.test": 2,
		"d.test": 9,
	}}

	assert.Equal(t, []DomainCount{
		{Domain: "d.test", Count: 9},
		{Domain: "a.test", Count: 5},
		{Domain: "b.test", Count: 2},
		{Domain: "c.test", Count: 2},
	}, r.SortedCounts())
}

func TestSortedDomains(t *testing.T) {
	r := &Result{Domains: map[string]int{"c.test": 1, "a.test": 3, "b.test": 2}}
	assert.Equal(t, []string{"a.test", "b.test", "c.test"}, r.SortedDomains())
}

func TestSortedEmpty(t *testing.T) {
	r := &Result{}
	assert.Empty(t, r.SortedCounts())
	assert.Empty(t, r.SortedDomains())
}
