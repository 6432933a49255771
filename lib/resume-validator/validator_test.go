package resumevalidator

import (
	"bytes"
	"io"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
)

func makePdfBody(t *testing.T) []byte {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 14)
	pdf.Cell(40, 10, "resume")
	buf := new(bytes.Buffer)
	err := pdf.Output(buf)
	require.Nil(t, err)
	return buf.Bytes()
}

func padTo(body []byte, size int) []byte {
	if len(body) >= size {
		return body
	}
	padded := make([]byte, size)
	copy(padded, body)
	return padded
}

func TestCheckResumeFile(t *testing.T) {
	pdfBody := makePdfBody(t)

	t.Run(`valid pdf passes and stream is reset`, func(t *testing.T) {
		file := bytes.NewReader(pdfBody)
		mime, vErr := CheckResumeFile(file, FileInfo{Name: "x.pdf", Size: int64(len(pdfBody))})
		require.Nil(t, vErr)
		require.Equal(t, MimePdf, mime)

		head := make([]byte, 4)
		_, err := io.ReadFull(file, head)
		require.Nil(t, err)
		require.Equal(t, []byte("%PDF"), head)
	})

	t.Run(`nil file rejected`, func(t *testing.T) {
		_, vErr := CheckResumeFile(nil, FileInfo{Name: "x.pdf", Size: 10})
		require.NotNil(t, vErr)
		require.Contains(t, vErr.Fields, "resume")
	})

	t.Run(`empty filename rejected`, func(t *testing.T) {
		_, vErr := CheckResumeFile(bytes.NewReader(pdfBody), FileInfo{Name: "  ", Size: int64(len(pdfBody))})
		require.NotNil(t, vErr)
	})

	t.Run(`size boundary: exactly 5MiB passes`, func(t *testing.T) {
		body := padTo(pdfBody, MaxFileSize)
		_, vErr := CheckResumeFile(bytes.NewReader(body), FileInfo{Name: "x.pdf", Size: int64(len(body))})
		require.Nil(t, vErr)
	})

	t.Run(`size boundary: 5MiB+1 rejected`, func(t *testing.T) {
		body := padTo(pdfBody, MaxFileSize+1)
		_, vErr := CheckResumeFile(bytes.NewReader(body), FileInfo{Name: "x.pdf", Size: int64(len(body))})
		require.NotNil(t, vErr)
		require.Contains(t, vErr.Fields["resume"], "превышает")
	})

	t.Run(`unknown extension rejected`, func(t *testing.T) {
		_, vErr := CheckResumeFile(bytes.NewReader(pdfBody), FileInfo{Name: "x.txt", Size: int64(len(pdfBody))})
		require.NotNil(t, vErr)
		require.Contains(t, vErr.Fields["resume"], "расширение")
	})

	t.Run(`pdf named docx rejected as mismatch`, func(t *testing.T) {
		_, vErr := CheckResumeFile(bytes.NewReader(pdfBody), FileInfo{Name: "x.docx", Size: int64(len(pdfBody))})
		require.NotNil(t, vErr)
	})

	t.Run(`x.pdf without %PDF header rejected`, func(t *testing.T) {
		body := append([]byte("plain text, definitely not a pdf "), make([]byte, 200)...)
		_, vErr := CheckResumeFile(bytes.NewReader(body), FileInfo{Name: "x.pdf", Size: int64(len(body))})
		require.NotNil(t, vErr)
	})

	t.Run(`docx signature accepted`, func(t *testing.T) {
		body := append([]byte{0x50, 0x4B, 0x03, 0x04}, make([]byte, 300)...)
		mime, vErr := CheckResumeFile(bytes.NewReader(body), FileInfo{Name: "cv.docx", Size: int64(len(body))})
		require.Nil(t, vErr)
		require.Equal(t, MimeDocx, mime)
	})

	t.Run(`legacy doc signature accepted`, func(t *testing.T) {
		body := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 300)...)
		mime, vErr := CheckResumeFile(bytes.NewReader(body), FileInfo{Name: "cv.doc", Size: int64(len(body))})
		require.Nil(t, vErr)
		require.Equal(t, MimeDoc, mime)
	})

	t.Run(`uppercase name lowered before checks`, func(t *testing.T) {
		_, vErr := CheckResumeFile(bytes.NewReader(pdfBody), FileInfo{Name: "RESUME.PDF", Size: int64(len(pdfBody))})
		require.Nil(t, vErr)
	})
}

func TestCheckContentSafety(t *testing.T) {
	t.Run(`normal file passes`, func(t *testing.T) {
		vErr := CheckContentSafety(FileInfo{Name: "resume.pdf", Size: 2048})
		require.Nil(t, vErr)
	})

	t.Run(`path traversal in name rejected`, func(t *testing.T) {
		vErr := CheckContentSafety(FileInfo{Name: "../../etc/passwd.pdf", Size: 2048})
		require.NotNil(t, vErr)
	})

	t.Run(`executable pattern rejected`, func(t *testing.T) {
		vErr := CheckContentSafety(FileInfo{Name: "resume.exe.pdf", Size: 2048})
		require.NotNil(t, vErr)
	})

	t.Run(`file under 100 bytes rejected`, func(t *testing.T) {
		vErr := CheckContentSafety(FileInfo{Name: "resume.pdf", Size: 99})
		require.NotNil(t, vErr)
	})
}
