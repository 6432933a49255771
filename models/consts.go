package models

type Department string

const (
	DepartmentIT      Department = "IT"
	DepartmentHR      Department = "HR"
	DepartmentFinance Department = "FINANCE"
)

func (d Department) IsValid() bool {
	switch d {
	case DepartmentIT, DepartmentHR, DepartmentFinance:
		return true
	}
	return false
}

func (d Department) Display() string {
	switch d {
	case DepartmentIT:
		return "Information Technology"
	case DepartmentHR:
		return "Human Resources"
	case DepartmentFinance:
		return "Finance"
	}
	return string(d)
}

type ApplicationStatus string

const (
	StatusSubmitted          ApplicationStatus = "SUBMITTED"
	StatusUnderReview        ApplicationStatus = "UNDER_REVIEW"
	StatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	StatusRejected           ApplicationStatus = "REJECTED"
	StatusAccepted           ApplicationStatus = "ACCEPTED"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusInterviewScheduled, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

func (s ApplicationStatus) Display() string {
	switch s {
	case StatusSubmitted:
		return "Submitted"
	case StatusUnderReview:
		return "Under Review"
	case StatusInterviewScheduled:
		return "Interview Scheduled"
	case StatusRejected:
		return "Rejected"
	case StatusAccepted:
		return "Accepted"
	}
	return string(s)
}

const (
	// ActorSystem - автор первой записи истории при регистрации
	ActorSystem = "system"
	// ActorAdmin - автор смены статуса по умолчанию
	ActorAdmin = "admin"
)

// InitialSubmissionComment - комментарий первой записи истории
const InitialSubmissionComment = "Initial application submitted"
