package ubersuggest

import (
	"errors"
	"fmt"

	"ubersuggest-go/pkg/api"
)

var (
	// ErrNoKeywordSupplied is returned by LookUp when the keyword is empty
	ErrNoKeywordSupplied = errors.New("A keyword or phrase must be supplied")

	// ErrLookupNotExecuted matches every LookupNotExecutedError
	ErrLookupNotExecuted = errors.New("look up not executed")

	// ErrTimeout is returned when every attempt got the gateway timeout notice
	ErrTimeout = errors.New("The server may be offline or too busy right now! Please try again later")

	// ErrInvalidLocale is returned for a locale not shaped like "en-us"
	ErrInvalidLocale = errors.New("invalid locale")

	// ErrUnexpectedResponse is returned for a body that is neither results nor
	// a timeout notice
	ErrUnexpectedResponse = api.ErrUnexpectedResponse
)

// Operations guarded by a prior lookup
const (
	OpVolume          = "volume"
	OpCPC             = "CPC"
	OpCompetition     = "competition"
	OpFilter          = "filter"
	OpNegativeFilter  = "negative filter"
	OpRelatedKeywords = "related keywords"
	OpMonthlyStats    = "monthly statistics"
	OpCSV             = "csv"
	OpMonthlyStatsCSV = "monthly statistics csv"
)

var notExecutedMessages = map[string]string{
	OpVolume:          "Can not get volume without executing look up",
	OpCPC:             "Can not get CPC without executing look up",
	OpCompetition:     "Can not get competition without executing look up",
	OpFilter:          "Can not filter results without executing look up",
	OpNegativeFilter:  "Can not filter negative keywords without executing look up",
	OpRelatedKeywords: "Can not get related keywords without executing look up",
	OpMonthlyStats:    "Can not get monthly results without executing look up",
	OpCSV:             "Can not create csv file without executing look up",
	OpMonthlyStatsCSV: "Can not create csv file without executing look up",
}

// LookupNotExecutedError reports an accessor called before a successful lookup
type LookupNotExecutedError struct {
	Op string
}

func (e *LookupNotExecutedError) Error() string {
	if msg, ok := notExecutedMessages[e.Op]; ok {
		return msg
	}
	return fmt.Sprintf("Can not get %s without executing look up", e.Op)
}

func (e *LookupNotExecutedError) Is(target error) bool {
	return target == ErrLookupNotExecuted
}

func notExecuted(op string) error {
	return &LookupNotExecutedError{Op: op}
}
