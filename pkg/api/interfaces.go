package api

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// KeywordRecord is one processed keyword returned by the keyword service
type KeywordRecord struct {
	Keyword      string      `json:"keyword"`
	Volume       int         `json:"volume"`
	CPC          float64     `json:"cpc"`
	Competition  float64     `json:"competition"`
	MonthlyStats []MonthStat `json:"ms"`
}

// MonthStat is the search count for a single month
type MonthStat struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Count int `json:"count"`
}

// KeywordStatistics pairs a keyword with its monthly search counts, in
// chronological order
type KeywordStatistics struct {
	Keyword string      `json:"keyword"`
	Months  []MonthStat `json:"months"`
}

// QueryResults holds both keyword lists of a successful query
type QueryResults struct {
	ProcessedKeywords   []KeywordRecord
	UnprocessedKeywords []string
}

// RawResponse is an undecoded HTTP response
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Fetcher performs a single GET against the keyword service
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*RawResponse, error)
}

// Number decodes a JSON number that may also arrive as a quoted string.
// null and "" decode to zero.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = 0
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		*n = 0
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %s: %w", string(data), err)
	}
	*n = Number(v)
	return nil
}

// Int rounds to the nearest integer
func (n Number) Int() int {
	return int(math.Round(float64(n)))
}

func (n Number) Float() float64 {
	return float64(n)
}

// rawQueryResponse mirrors the service body; both the success and the
// timeout shape decode into it
type rawQueryResponse struct {
	Message string `json:"message"`
	Results *struct {
		ProcessedKeywords   []rawKeyword     `json:"processed_keywords"`
		UnprocessedKeywords []relatedKeyword `json:"unprocessed_keywords"`
	} `json:"results"`
}

type rawKeyword struct {
	Keyword     string         `json:"keyword"`
	Volume      Number         `json:"volume"`
	CPC         Number         `json:"cpc"`
	Competition Number         `json:"competition"`
	MS          []rawMonthStat `json:"ms"`
}

type rawMonthStat struct {
	Year  Number `json:"year"`
	Month Number `json:"month"`
	Count Number `json:"count"`
}

// relatedKeyword accepts either a bare string or an object with a keyword field
type relatedKeyword string

func (r *relatedKeyword) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = relatedKeyword(s)
		return nil
	}

	var obj struct {
		Keyword string `json:"keyword"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid unprocessed keyword %s: %w", string(data), err)
	}
	*r = relatedKeyword(obj.Keyword)
	return nil
}

func (k rawKeyword) toRecord() KeywordRecord {
	months := make([]MonthStat, 0, len(k.MS))
	for _, m := range k.MS {
		months = append(months, MonthStat{
			Year:  m.Year.Int(),
			Month: m.Month.Int(),
			Count: m.Count.Int(),
		})
	}

	return KeywordRecord{
		Keyword:      k.Keyword,
		Volume:       k.Volume.Int(),
		CPC:          k.CPC.Float(),
		Competition:  k.Competition.Float(),
		MonthlyStats: months,
	}
}
