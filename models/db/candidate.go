package dbmodels

import (
	"time"

	"job-application-backend/models"
)

type Candidate struct {
	BaseModel
	FullName          string                   `gorm:"type:varchar(255)"`
	Email             string                   `gorm:"type:varchar(255);uniqueIndex"`
	PhoneNumber       string                   `gorm:"type:varchar(20);uniqueIndex"`
	BirthDate         time.Time                `gorm:"type:date"`
	YearsOfExperience int
	Department        models.Department        `gorm:"type:varchar(20);index"`
	Status            models.ApplicationStatus `gorm:"type:varchar(30);index"`
	// резюме в файловом хранилище
	ResumeKey      string `gorm:"type:varchar(512)"` // ключ объекта
	ResumeFileName string `gorm:"type:varchar(255)"` // исходное имя файла
	ResumeExt      string `gorm:"type:varchar(10)"`
}

func (c Candidate) HasResume() bool {
	return c.ResumeKey != ""
}

// Age - полных лет на указанную дату
func (c Candidate) Age(onDate time.Time) int {
	age := onDate.Year() - c.BirthDate.Year()
	if onDate.Month() < c.BirthDate.Month() ||
		(onDate.Month() == c.BirthDate.Month() && onDate.Day() < c.BirthDate.Day()) {
		age--
	}
	return age
}
