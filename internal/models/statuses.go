package models

type UserType string
type JobStatus string
type ApplicationStatus string
type SkillScoreStatus string

const (
	UserTypeJobSeeker UserType = "job_seeker"
	UserTypeRecruiter UserType = "recruiter"

	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"

	ApplicationApplied     ApplicationStatus = "applied"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationInterview   ApplicationStatus = "interview"
	ApplicationOffered     ApplicationStatus = "offered"
	ApplicationHired       ApplicationStatus = "hired"
	ApplicationRejected    ApplicationStatus = "rejected"

	SkillScoreClaimed  SkillScoreStatus = "claimed"
	SkillScoreVerified SkillScoreStatus = "verified"
)

// OutcomeLabel maps an application status to a training label.
// Applied has no known outcome and yields no label.
func (s ApplicationStatus) OutcomeLabel() (float64, bool) {
	switch s {
	case ApplicationHired, ApplicationOffered, ApplicationInterview, ApplicationShortlisted:
		return 1.0, true
	case ApplicationRejected:
		return 0.0, true
	default:
		return 0, false
	}
}
