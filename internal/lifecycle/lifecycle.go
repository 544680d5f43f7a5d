// Package lifecycle holds the rules for moving an issue between statuses:
// which supplementary fields each target status requires and how a
// transition payload is merged into an issue.
package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"ecity-api/internal/domain"
)

// Transition is an admin's request to move an issue to Target.
// Nil fields are left untouched on the issue.
type Transition struct {
	Target domain.IssueStatus

	AssignedOfficer     *string
	AssignedDepartment  *string
	EstimatedCompletion *time.Time
	ActionTaken         *string
	ProgressUpdate      *string

	ResolutionTime    *time.Time
	ResolutionRemarks *string
	ResolutionOfficer *string
	CostIncurred      *float64
	ResourcesUsed     *string

	RejectionReason       *string
	AlternativeSuggestion *string

	Escalated *bool
}

// FieldError describes one failing field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every failing field in check order.
// Its message is the first field's message.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Message
}

// FieldNames returns the failing field names in check order
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}

type requirement struct {
	field   string
	message string
	value   func(*Transition) *string
}

var requirements = map[domain.IssueStatus][]requirement{
	domain.IssueStatusInProgress: {
		{"assignedOfficer", "Assigned officer is required", func(t *Transition) *string { return t.AssignedOfficer }},
		{"assignedDepartment", "Assigned department is required", func(t *Transition) *string { return t.AssignedDepartment }},
		{"actionTaken", "Action taken is required", func(t *Transition) *string { return t.ActionTaken }},
	},
	domain.IssueStatusResolved: {
		{"resolutionOfficer", "Resolution officer is required", func(t *Transition) *string { return t.ResolutionOfficer }},
		{"resolutionRemarks", "Resolution remarks are required", func(t *Transition) *string { return t.ResolutionRemarks }},
	},
	domain.IssueStatusRejected: {
		{"rejectionReason", "Rejection reason is required", func(t *Transition) *string { return t.RejectionReason }},
	},
}

// RequiredFields returns the payload fields that must be non-empty to enter target
func RequiredFields(target domain.IssueStatus) []string {
	reqs := requirements[target]
	fields := make([]string, 0, len(reqs))
	for _, r := range reqs {
		fields = append(fields, r.field)
	}
	return fields
}

// Normalize trims every text field and drops the ones left empty
func Normalize(t *Transition) {
	for _, p := range []**string{
		&t.AssignedOfficer,
		&t.AssignedDepartment,
		&t.ActionTaken,
		&t.ProgressUpdate,
		&t.ResolutionRemarks,
		&t.ResolutionOfficer,
		&t.ResourcesUsed,
		&t.RejectionReason,
		&t.AlternativeSuggestion,
	} {
		if *p == nil {
			continue
		}
		trimmed := strings.TrimSpace(**p)
		if trimmed == "" {
			*p = nil
			continue
		}
		*p = &trimmed
	}
}

// Validate checks the target status and its required fields. Text fields
// are compared after trimming.
func Validate(t *Transition) error {
	if !t.Target.IsValid() {
		return &ValidationError{Fields: []FieldError{{
			Field:   "status",
			Message: fmt.Sprintf("Status must be one of: %s", statusList()),
		}}}
	}

	var failed []FieldError
	for _, r := range requirements[t.Target] {
		v := r.value(t)
		if v == nil || strings.TrimSpace(*v) == "" {
			failed = append(failed, FieldError{Field: r.field, Message: r.message})
		}
	}
	if len(failed) > 0 {
		return &ValidationError{Fields: failed}
	}
	if t.CostIncurred != nil && *t.CostIncurred < 0 {
		return &ValidationError{Fields: []FieldError{{Field: "costIncurred", Message: "Cost incurred cannot be negative"}}}
	}
	return nil
}

// Apply merges a validated transition into issue and returns the column
// updates for persistence together with the supplied fields keyed by their
// JSON names. Nothing already on the issue is cleared. Entering resolved
// without a resolution time stamps it with now.
func Apply(issue *domain.Issue, t *Transition, now time.Time) (updates map[string]interface{}, changes map[string]interface{}) {
	updates = map[string]interface{}{"status": t.Target}
	changes = map[string]interface{}{"status": t.Target}
	issue.Status = t.Target

	setString := func(column, field string, dst **string, v *string) {
		if v == nil {
			return
		}
		val := *v
		*dst = &val
		updates[column] = val
		changes[field] = val
	}
	setTime := func(column, field string, dst **time.Time, v *time.Time) {
		if v == nil {
			return
		}
		val := v.UTC()
		*dst = &val
		updates[column] = val
		changes[field] = val
	}

	setString("assigned_officer", "assignedOfficer", &issue.AssignedOfficer, t.AssignedOfficer)
	setString("assigned_department", "assignedDepartment", &issue.AssignedDepartment, t.AssignedDepartment)
	setTime("estimated_completion", "estimatedCompletion", &issue.EstimatedCompletion, t.EstimatedCompletion)
	setString("action_taken", "actionTaken", &issue.ActionTaken, t.ActionTaken)
	setString("progress_update", "progressUpdate", &issue.ProgressUpdate, t.ProgressUpdate)

	resolutionTime := t.ResolutionTime
	if t.Target == domain.IssueStatusResolved && resolutionTime == nil {
		resolutionTime = &now
	}
	setTime("resolution_time", "resolutionTime", &issue.ResolutionTime, resolutionTime)
	setString("resolution_remarks", "resolutionRemarks", &issue.ResolutionRemarks, t.ResolutionRemarks)
	setString("resolution_officer", "resolutionOfficer", &issue.ResolutionOfficer, t.ResolutionOfficer)
	if t.CostIncurred != nil {
		cost := *t.CostIncurred
		issue.CostIncurred = &cost
		updates["cost_incurred"] = cost
		changes["costIncurred"] = cost
	}
	setString("resources_used", "resourcesUsed", &issue.ResourcesUsed, t.ResourcesUsed)

	setString("rejection_reason", "rejectionReason", &issue.RejectionReason, t.RejectionReason)
	setString("alternative_suggestion", "alternativeSuggestion", &issue.AlternativeSuggestion, t.AlternativeSuggestion)

	if t.Escalated != nil {
		issue.Escalated = *t.Escalated
		updates["escalated"] = *t.Escalated
		changes["escalated"] = *t.Escalated
	}

	return updates, changes
}

func statusList() string {
	names := make([]string, 0, len(domain.IssueStatuses))
	for _, s := range domain.IssueStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
