package ubersuggest

// DownloadResultsAsCSV writes every stored record to
// ubersuggest_<keyword>.csv and returns the path
func (c *Client) DownloadResultsAsCSV() (string, error) {
	if !c.Executed() {
		return "", notExecuted(OpCSV)
	}
	return c.exporter.WriteResults(c.keyword, c.results)
}

// DownloadMonthlyStatisticsAsCSV writes MonthlyStatistics(period) to
// ubersuggest_<keyword>_monthly_statistics.csv and returns the path
func (c *Client) DownloadMonthlyStatisticsAsCSV(period int) (string, error) {
	if !c.Executed() {
		return "", notExecuted(OpMonthlyStatsCSV)
	}
	return c.exporter.WriteMonthlyStatistics(c.keyword, c.monthlyStatistics(period))
}
