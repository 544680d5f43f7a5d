package metrics

// IncrementIssueCreated increments the issue creation counter for a category
func (m *Metrics) IncrementIssueCreated(category string) {
	m.safeExecute("IncrementIssueCreated", func() {
		m.IssueCreatedTotal.WithLabelValues(category).Inc()
	})
}

// RecordStatusTransition counts a lifecycle transition
func (m *Metrics) RecordStatusTransition(from, to string) {
	m.safeExecute("RecordStatusTransition", func() {
		m.StatusTransitions.WithLabelValues(from, to).Inc()
	})
}

// IncrementUpvotes increments the upvote counter
func (m *Metrics) IncrementUpvotes() {
	m.safeExecute("IncrementUpvotes", func() {
		m.UpvotesTotal.Inc()
	})
}

// IncrementCommentCreated increments the comment creation counter
func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentCreatedTotal.Inc()
	})
}

// IncrementRateLimited counts a submission rejected by the rate limiter
func (m *Metrics) IncrementRateLimited() {
	m.safeExecute("IncrementRateLimited", func() {
		m.RateLimitedTotal.Inc()
	})
}

// SetLiveClients sets the connected live feed clients gauge
func (m *Metrics) SetLiveClients(count int) {
	m.safeExecute("SetLiveClients", func() {
		m.LiveClientsConnected.Set(float64(count))
	})
}

// SetIssuesTotal sets total issues gauge
func (m *Metrics) SetIssuesTotal(count int64) {
	m.safeExecute("SetIssuesTotal", func() {
		m.IssuesTotal.Set(float64(count))
	})
}

// SetIssuesByStatus replaces the per-status gauge values
func (m *Metrics) SetIssuesByStatus(counts map[string]int64) {
	m.safeExecute("SetIssuesByStatus", func() {
		for status, count := range counts {
			m.IssuesByStatus.WithLabelValues(status).Set(float64(count))
		}
	})
}
