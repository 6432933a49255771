package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	dbmodels "job-application-backend/models/db"
)

// GenerateCandidateProfile - сводный профиль кандидата с историей статусов
// для печати из админки
func GenerateCandidateProfile(candidate dbmodels.Candidate, history []dbmodels.StatusHistory) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateCandidateProfile panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Candidate Profile"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeField := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(55, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, tr(value), "", "L", false)
	}

	writeField("Full name:", candidate.FullName)
	writeField("Email:", candidate.Email)
	writeField("Phone:", candidate.PhoneNumber)
	if !candidate.BirthDate.IsZero() {
		writeField("Date of birth:", candidate.BirthDate.Format("2006-01-02"))
	}
	writeField("Years of experience:", fmt.Sprintf("%d", candidate.YearsOfExperience))
	writeField("Department:", string(candidate.Department))
	writeField("Current status:", candidate.Status.Display())
	writeField("Resume file:", candidate.ResumeFileName)
	writeField("Submitted at:", candidate.CreatedAt.Format("2006-01-02 15:04"))

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr("Status History"), "", 1, "L", false, 0, "")
	pdf.Ln(1)

	if len(history) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 7, tr("No status changes recorded"), "", 1, "L", false, 0, "")
	}
	for _, item := range history {
		prev := "-"
		if item.PreviousStatus != nil {
			prev = item.PreviousStatus.Display()
		}
		pdf.SetFont("Helvetica", "B", 11)
		line := fmt.Sprintf("%s  %s -> %s (%s)",
			item.CreatedAt.Format("2006-01-02 15:04"), prev, item.NewStatus.Display(), item.ChangedBy)
		pdf.CellFormat(0, 7, tr(line), "", 1, "L", false, 0, "")
		if item.Comments != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 6, tr(item.Comments), "", "L", false)
		}
		pdf.Ln(1)
	}

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
