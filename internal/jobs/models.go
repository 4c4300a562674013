package jobs

import "time"

// Job is a posted opening.
type Job struct {
	ID        string `json:"id" bson:"_id"`
	Title     string `json:"title" bson:"title"`
	CompanyID string `json:"company_id" bson:"company_id"`
	Location  string `json:"location,omitempty" bson:"location,omitempty"`

	Type JobType `json:"type" bson:"type"`

	// Salary bounds in whole currency units; zero means unspecified.
	SalaryMin int64 `json:"salary_min,omitempty" bson:"salary_min,omitempty"`
	SalaryMax int64 `json:"salary_max,omitempty" bson:"salary_max,omitempty"`

	Description  string   `json:"description,omitempty" bson:"description,omitempty"`
	Requirements []string `json:"requirements,omitempty" bson:"requirements,omitempty"`

	Status JobStatus `json:"status" bson:"status"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

func isValidType(t JobType) bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	default:
		return false
	}
}

func isValidStatus(s JobStatus) bool {
	switch s {
	case JobStatusDraft, JobStatusOpen, JobStatusClosed:
		return true
	default:
		return false
	}
}
