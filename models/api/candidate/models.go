package candidateapimodels

import (
	"strings"
	"time"
	"unicode"

	"job-application-backend/models"
	apimodels "job-application-backend/models/api"
	dbmodels "job-application-backend/models/db"
)

const birthDateLayout = "2006-01-02"

// RegistrationData - поля анкеты кандидата из multipart запроса
type RegistrationData struct {
	FullName          string `json:"full_name" form:"full_name"`
	Email             string `json:"email" form:"email"`
	PhoneNumber       string `json:"phone_number" form:"phone_number"`
	DateOfBirth       string `json:"date_of_birth" form:"date_of_birth"` // YYYY-MM-DD
	YearsOfExperience int    `json:"years_of_experience" form:"years_of_experience"`
	Department        string `json:"department" form:"department"`
}

var suspiciousDomains = []string{"example.com", "test.com", "localhost"}

// Validate - проверки формата и согласованности полей анкеты.
// Уникальность email/телефона и файл резюме проверяются отдельно.
func (r RegistrationData) Validate() *models.ValidationError {
	vErr := &models.ValidationError{}

	fullName := strings.TrimSpace(r.FullName)
	switch {
	case fullName == "":
		vErr.Add("full_name", "не указано имя кандидата")
	case len(fullName) < 2:
		vErr.Add("full_name", "имя должно содержать не менее 2 символов")
	case len(fullName) > 255:
		vErr.Add("full_name", "имя слишком длинное (максимум 255 символов)")
	case !containsLetter(fullName):
		vErr.Add("full_name", "имя должно содержать хотя бы одну букву")
	}

	email := strings.ToLower(strings.TrimSpace(r.Email))
	switch {
	case email == "":
		vErr.Add("email", "не указан email")
	case len(email) > 254:
		vErr.Add("email", "email слишком длинный")
	case !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@"):
		vErr.Add("email", "некорректный email")
	default:
		domain := email[strings.LastIndex(email, "@")+1:]
		for _, suspicious := range suspiciousDomains {
			if domain == suspicious {
				vErr.Add("email", "укажите действующий email")
				break
			}
		}
	}

	phone := strings.TrimSpace(r.PhoneNumber)
	if phone == "" {
		vErr.Add("phone_number", "не указан номер телефона")
	} else {
		digits := 0
		for _, c := range phone {
			if unicode.IsDigit(c) {
				digits++
			}
		}
		if digits < 7 {
			vErr.Add("phone_number", "номер телефона слишком короткий")
		} else if digits > 15 {
			vErr.Add("phone_number", "номер телефона слишком длинный")
		}
	}

	if r.YearsOfExperience < 0 {
		vErr.Add("years_of_experience", "опыт работы не может быть отрицательным")
	} else if r.YearsOfExperience > 50 {
		vErr.Add("years_of_experience", "опыт работы не может превышать 50 лет")
	}

	if !models.Department(r.Department).IsValid() {
		vErr.Add("department", "неизвестное подразделение, допустимы IT, HR, FINANCE")
	}

	birthDate, err := r.GetBirthDate()
	if err != nil {
		vErr.Add("date_of_birth", "некорректный формат даты, ожидается YYYY-MM-DD")
	} else {
		age := ageAt(birthDate, time.Now())
		if age < 16 {
			vErr.Add("date_of_birth", "кандидат должен быть не моложе 16 лет")
		} else if _, ok := vErr.Fields["years_of_experience"]; !ok {
			maxReasonable := age - 16
			if r.YearsOfExperience > maxReasonable {
				vErr.Add("years_of_experience", "опыт работы не согласуется с возрастом кандидата")
			}
		}
	}

	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

func (r RegistrationData) GetBirthDate() (time.Time, error) {
	return time.Parse(birthDateLayout, strings.TrimSpace(r.DateOfBirth))
}

func containsLetter(value string) bool {
	for _, c := range value {
		if unicode.IsLetter(c) {
			return true
		}
	}
	return false
}

func ageAt(birthDate, onDate time.Time) int {
	age := onDate.Year() - birthDate.Year()
	if onDate.Month() < birthDate.Month() ||
		(onDate.Month() == birthDate.Month() && onDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// StatusUpdateRequest - запрос смены статуса оператором
type StatusUpdateRequest struct {
	Status    string `json:"status"`
	Comments  string `json:"comments"`
	ChangedBy string `json:"changed_by"`
}

func (r StatusUpdateRequest) Validate() *models.ValidationError {
	vErr := &models.ValidationError{}
	if !models.ApplicationStatus(r.Status).IsValid() {
		vErr.Add("status", "неизвестный статус")
	}
	if len(r.Comments) > 1000 {
		vErr.Add("comments", "комментарий слишком длинный (максимум 1000 символов)")
	}
	if len(r.ChangedBy) > 255 {
		vErr.Add("changed_by", "имя автора слишком длинное (максимум 255 символов)")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

// GetActor - автор изменения, по умолчанию admin
func (r StatusUpdateRequest) GetActor() string {
	if strings.TrimSpace(r.ChangedBy) == "" {
		return models.ActorAdmin
	}
	return r.ChangedBy
}

// ListFilter - фильтр списка кандидатов в админке
type ListFilter struct {
	apimodels.Pagination
	Department string `json:"department" query:"department"`
	Status     string `json:"status" query:"status"`
	Search     string `json:"search" query:"search"` // по имени или email
}

type RegistrationView struct {
	CandidateID string                   `json:"candidate_id"`
	Status      models.ApplicationStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
}

type StatusView struct {
	ID                string    `json:"id"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Status            string    `json:"status"`
	StatusDisplay     string    `json:"status_display"`
	Department        string    `json:"department"`
	DepartmentDisplay string    `json:"department_display"`
	LatestFeedback    string    `json:"latest_feedback"`
	StatusUpdatedAt   time.Time `json:"status_updated_at"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type HistoryView struct {
	ID                     string  `json:"id"`
	PreviousStatus         *string `json:"previous_status"`
	PreviousStatusDisplay  *string `json:"previous_status_display"`
	NewStatus              string  `json:"new_status"`
	NewStatusDisplay       string  `json:"new_status_display"`
	Comments               string  `json:"comments"`
	ChangedBy              string  `json:"changed_by"`
	ChangedAt              time.Time `json:"changed_at"`
}

type ListItemView struct {
	ID                string    `json:"id"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	PhoneNumber       string    `json:"phone_number"`
	DateOfBirth       string    `json:"date_of_birth"`
	Age               int       `json:"age"`
	YearsOfExperience int       `json:"years_of_experience"`
	Department        string    `json:"department"`
	DepartmentDisplay string    `json:"department_display"`
	Status            string    `json:"status"`
	StatusDisplay     string    `json:"status_display"`
	HasResume         bool      `json:"has_resume"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type DetailView struct {
	ListItemView
	ResumeFileName string        `json:"resume_filename,omitempty"`
	StatusHistory  []HistoryView `json:"status_history"`
}

type HistoryListView struct {
	CandidateID   string        `json:"candidate_id"`
	CandidateName string        `json:"candidate_name"`
	CurrentStatus string        `json:"current_status"`
	StatusHistory []HistoryView `json:"status_history"`
}

type TransitionView struct {
	CandidateID    string    `json:"candidate_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ConvertHistory(rec dbmodels.StatusHistory) HistoryView {
	view := HistoryView{
		ID:               rec.ID,
		NewStatus:        string(rec.NewStatus),
		NewStatusDisplay: rec.NewStatus.Display(),
		Comments:         rec.Comments,
		ChangedBy:        rec.ChangedBy,
		ChangedAt:        rec.CreatedAt,
	}
	if rec.PreviousStatus != nil {
		prev := string(*rec.PreviousStatus)
		prevDisplay := rec.PreviousStatus.Display()
		view.PreviousStatus = &prev
		view.PreviousStatusDisplay = &prevDisplay
	}
	return view
}

func ConvertListItem(rec dbmodels.Candidate) ListItemView {
	return ListItemView{
		ID:                rec.ID,
		FullName:          rec.FullName,
		Email:             rec.Email,
		PhoneNumber:       rec.PhoneNumber,
		DateOfBirth:       rec.BirthDate.Format(birthDateLayout),
		Age:               rec.Age(time.Now()),
		YearsOfExperience: rec.YearsOfExperience,
		Department:        string(rec.Department),
		DepartmentDisplay: rec.Department.Display(),
		Status:            string(rec.Status),
		StatusDisplay:     rec.Status.Display(),
		HasResume:         rec.HasResume(),
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
}

func ConvertDetail(rec dbmodels.Candidate, history []dbmodels.StatusHistory) DetailView {
	view := DetailView{
		ListItemView:   ConvertListItem(rec),
		ResumeFileName: rec.ResumeFileName,
		StatusHistory:  make([]HistoryView, 0, len(history)),
	}
	for _, item := range history {
		view.StatusHistory = append(view.StatusHistory, ConvertHistory(item))
	}
	return view
}

func ConvertStatus(rec dbmodels.Candidate, latest *dbmodels.StatusHistory) StatusView {
	view := StatusView{
		ID:                rec.ID,
		FullName:          rec.FullName,
		Email:             rec.Email,
		Status:            string(rec.Status),
		StatusDisplay:     rec.Status.Display(),
		Department:        string(rec.Department),
		DepartmentDisplay: rec.Department.Display(),
		StatusUpdatedAt:   rec.CreatedAt,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
	if latest != nil {
		view.LatestFeedback = latest.Comments
		view.StatusUpdatedAt = latest.CreatedAt
	}
	return view
}
