package panther

import "time"

// graphQLDateLayout is the timestamp format the GraphQL API expects.
const graphQLDateLayout = "2006-01-02T15:04:05.000Z"

// GraphQLDate formats a time for GraphQL date variables.
func GraphQLDate(t time.Time) string {
	return t.UTC().Format(graphQLDateLayout)
}

// TodayDateRange returns the most recent complete UTC day: midnight of
// yesterday through midnight of today. Used as the default window for alert
// and metrics queries.
func TodayDateRange() (time.Time, time.Time) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	start := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
