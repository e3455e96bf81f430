// Package certificate рисует PDF-сертификат о прохождении курсов.
package certificate

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// documentDate фиксированная дата в метаданных PDF: повторный запрос даёт тот же документ.
var documentDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Data содержимое сертификата.
type Data struct {
	Name           string
	CompletedCount int
	// Branch выбранная ветка пользователя, nil если не выбрана.
	Branch *string
}

// Renderer рисует A4 сертификат.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render возвращает PDF-документ.
func (r *Renderer) Render(d Data) ([]byte, error) {
	const op = "certificate.Render"

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Certificat IT Learn Pro", true)
	pdf.SetAuthor("IT Learn Pro", true)
	pdf.SetCreationDate(documentDate)
	pdf.SetModificationDate(documentDate)
	pdf.SetCatalogSort(true)
	pdf.AddPage()
	// стандартные шрифты fpdf в cp1252: французские символы переводятся явно
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetY(30)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, tr("Certificat de Complétion"), "", 1, "C", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Félicitations, %s !", d.Name)), "", 1, "C", false, 0, "")

	pdf.Ln(10)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Vous avez complété %d cours en %s.", d.CompletedCount, branchLabel(d.Branch))),
		"", 1, "C", false, 0, "")

	pdf.Ln(20)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 10, tr("Délivré par IT Learn Pro"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}

func branchLabel(branch *string) string {
	if branch == nil || *branch == "" {
		return "diverses branches"
	}
	return *branch
}
