package ubersuggest

import (
	"fmt"
	"strconv"
	"strings"
)

// AllMonths selects every available month in MonthlyStatistics
const AllMonths = 0

// Volume returns the search volume of the current keyword, or 0 when the
// service did not report one
func (c *Client) Volume() (int, error) {
	if !c.Executed() {
		return 0, notExecuted(OpVolume)
	}
	if r, ok := c.find(func(r KeywordRecord) bool { return r.Volume != 0 }); ok {
		return r.Volume, nil
	}
	return 0, nil
}

// CPC returns the cost per click of the current keyword, or 0
func (c *Client) CPC() (float64, error) {
	if !c.Executed() {
		return 0, notExecuted(OpCPC)
	}
	if r, ok := c.find(func(r KeywordRecord) bool { return r.CPC != 0 }); ok {
		return r.CPC, nil
	}
	return 0, nil
}

// Competition returns the competition (0 to 1) of the current keyword, or 0
func (c *Client) Competition() (float64, error) {
	if !c.Executed() {
		return 0, notExecuted(OpCompetition)
	}
	if r, ok := c.find(func(r KeywordRecord) bool { return r.Competition != 0 }); ok {
		return r.Competition, nil
	}
	return 0, nil
}

// find returns the first record for the current keyword whose field of
// interest is set
func (c *Client) find(hasValue func(KeywordRecord) bool) (KeywordRecord, bool) {
	keyword, phrase := c.keyword, c.phrase()
	for _, r := range c.results {
		if (r.Keyword == keyword || r.Keyword == phrase) && hasValue(r) {
			return r, true
		}
	}
	return KeywordRecord{}, false
}

// Results returns a copy of every stored record
func (c *Client) Results() []KeywordRecord {
	return c.limit(len(c.results))
}

// RelatedKeywords returns the unprocessed keywords of the last lookup
func (c *Client) RelatedKeywords() ([]string, error) {
	if !c.Executed() {
		return nil, notExecuted(OpRelatedKeywords)
	}
	out := make([]string, len(c.relatedKeywords))
	copy(out, c.relatedKeywords)
	return out, nil
}

// FilterResults returns the records containing any of filters. Filters are
// applied one after the other, so a record matching two filters appears twice.
func (c *Client) FilterResults(filters []string) ([]KeywordRecord, error) {
	if !c.Executed() {
		return nil, notExecuted(OpFilter)
	}

	out := []KeywordRecord{}
	for _, filter := range filters {
		for _, r := range c.results {
			if strings.Contains(r.Keyword, filter) {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// FilterWithNegativeKeywords returns the records lacking a negative keyword,
// once per negative keyword they lack
func (c *Client) FilterWithNegativeKeywords(negativeKeywords []string) ([]KeywordRecord, error) {
	if !c.Executed() {
		return nil, notExecuted(OpNegativeFilter)
	}

	out := []KeywordRecord{}
	for _, negative := range negativeKeywords {
		for _, r := range c.results {
			if !strings.Contains(r.Keyword, negative) {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

// MonthlyStatistics returns the first period months of every record, in
// results order. AllMonths, or a period at least as long as the available
// history, returns everything.
func (c *Client) MonthlyStatistics(period int) ([]KeywordStatistics, error) {
	if !c.Executed() {
		return nil, notExecuted(OpMonthlyStats)
	}
	return c.monthlyStatistics(period), nil
}

func (c *Client) monthlyStatistics(period int) []KeywordStatistics {
	stats := make([]KeywordStatistics, 0, len(c.results))
	for _, r := range c.results {
		n := len(r.MonthlyStats)
		if period != AllMonths && period < n {
			n = max(period, 0)
		}
		months := make([]MonthStat, n)
		copy(months, r.MonthlyStats[:n])
		stats = append(stats, KeywordStatistics{Keyword: r.Keyword, Months: months})
	}
	return stats
}

// ParsePeriod reads "ALL" (any case) or a positive month count
func ParsePeriod(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "ALL") {
		return AllMonths, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid period %q: expected ALL or a positive number of months", s)
	}
	return n, nil
}

// Statistics looks up the months of one keyword in a MonthlyStatistics result
func Statistics(stats []KeywordStatistics, keyword string) ([]MonthStat, bool) {
	for _, s := range stats {
		if s.Keyword == keyword {
			return s.Months, true
		}
	}
	return nil, false
}
