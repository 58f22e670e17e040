package excel

import (
	"fmt"
	"strings"

	"ilmakase/internal/errors"
	"ilmakase/models"

	"github.com/xuri/excelize/v2"
)

// PortfolioExporter renders a portfolio card with its analyses and
// records as an xlsx workbook.
type PortfolioExporter struct{}

// NewPortfolioExporter creates an xlsx exporter
func NewPortfolioExporter() *PortfolioExporter {
	return &PortfolioExporter{}
}

// Build assembles the workbook: one overview sheet, one analyses sheet,
// one records sheet.
func (e *PortfolioExporter) Build(project *models.Project, analyses []*models.Analysis, records []*models.Record) (*excelize.File, error) {
	f := excelize.NewFile()

	const overview = "Portfolio"
	f.SetSheetName("Sheet1", overview)

	rows := [][]interface{}{
		{"Title", project.Title},
		{"Created", project.CreatedAt.Format("2006-01-02")},
		{"Summary", project.Summary},
		{"Tasks", strings.Join(project.Tasks, "\n")},
		{"Results", strings.Join(project.Results, "\n")},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, errors.Wrap(err, "failed to compute cell name")
		}
		if err := f.SetSheetRow(overview, cell, &row); err != nil {
			return nil, errors.Wrap(err, "failed to write overview row")
		}
	}

	const analysisSheet = "Analyses"
	if _, err := f.NewSheet(analysisSheet); err != nil {
		return nil, errors.Wrap(err, "failed to create analyses sheet")
	}
	header := []interface{}{"Created", "Pattern", "Workflow", "Keywords", "Insight"}
	if err := f.SetSheetRow(analysisSheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "failed to write analyses header")
	}
	for i, a := range analyses {
		row := []interface{}{
			a.CreatedAt.Format("2006-01-02"),
			a.Pattern,
			a.Workflow,
			strings.Join(a.Keywords, ", "),
			a.Insight,
		}
		if err := f.SetSheetRow(analysisSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, errors.Wrap(err, "failed to write analysis row")
		}
	}

	const recordSheet = "Records"
	if _, err := f.NewSheet(recordSheet); err != nil {
		return nil, errors.Wrap(err, "failed to create records sheet")
	}
	recordHeader := []interface{}{"Date", "Tasks", "Keywords"}
	if err := f.SetSheetRow(recordSheet, "A1", &recordHeader); err != nil {
		return nil, errors.Wrap(err, "failed to write records header")
	}
	for i, r := range records {
		row := []interface{}{
			r.LogDate.Format("2006-01-02"),
			strings.Join(r.Contents, "\n"),
			strings.Join(r.Keywords, ", "),
		}
		if err := f.SetSheetRow(recordSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, errors.Wrap(err, "failed to write record row")
		}
	}

	return f, nil
}
