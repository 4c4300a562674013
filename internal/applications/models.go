package applications

import "time"

// Application is a candidate's submission for a job.
type Application struct {
	ID    string `json:"id" bson:"_id"`
	JobID string `json:"job_id" bson:"job_id"`

	ApplicantName  string `json:"applicant_name" bson:"applicant_name"`
	ApplicantEmail string `json:"applicant_email" bson:"applicant_email"`
	ApplicantPhone string `json:"applicant_phone,omitempty" bson:"applicant_phone,omitempty"`

	// ResumeNote is free text; file storage is out of scope.
	ResumeNote string `json:"resume_note,omitempty" bson:"resume_note,omitempty"`

	Status Status `json:"status" bson:"status"`
	Notes  string `json:"notes,omitempty" bson:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type Status string

const (
	StatusSubmitted   Status = "submitted"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusHired       Status = "hired"
)

// validTransitions encodes the pipeline: submitted -> shortlisted/rejected,
// shortlisted -> hired/rejected. hired and rejected are terminal.
var validTransitions = map[Status][]Status{
	StatusSubmitted:   {StatusShortlisted, StatusRejected},
	StatusShortlisted: {StatusHired, StatusRejected},
}

func canTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
