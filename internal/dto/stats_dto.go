package dto

// StatsResponse summarizes issues, optionally for one reporter.
// pendingIssues counts status "pending" only.
type StatsResponse struct {
	TotalIssues    int64 `json:"totalIssues" example:"3"`
	ResolvedIssues int64 `json:"resolvedIssues" example:"1"`
	PendingIssues  int64 `json:"pendingIssues" example:"2"`
}

type CategoryStat struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type StatusStat struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// TrendPoint is the number of issues created on one UTC day (YYYY-MM-DD)
type TrendPoint struct {
	Date  string `json:"date" example:"2024-05-01"`
	Count int    `json:"count"`
}
