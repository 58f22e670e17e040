package ui

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/google/uuid"
)

// handleGeneratePortfolio folds completed analyses into one portfolio
// card
func (s *Server) handleGeneratePortfolio(c *gin.Context) {
	user := CurrentUser(c)

	project, err := s.portfolioService.Generate(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"project": project,
		"message": "portfolio card created",
	})
}

// handleListPortfolio lists the user's cards with the summary rendered
// to HTML
func (s *Server) handleListPortfolio(c *gin.Context) {
	user := CurrentUser(c)

	projects, err := s.portfolioService.List(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	type projectView struct {
		Project     interface{} `json:"project"`
		SummaryHTML string      `json:"summary_html"`
	}
	views := make([]projectView, 0, len(projects))
	for _, project := range projects {
		views = append(views, projectView{
			Project:     project,
			SummaryHTML: renderMarkdown(project.Summary),
		})
	}

	c.JSON(http.StatusOK, gin.H{"projects": views})
}

// handleExportPortfolio streams one card as an xlsx workbook
func (s *Server) handleExportPortfolio(c *gin.Context) {
	user := CurrentUser(c)

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	project, analyses, records, err := s.portfolioService.Export(c.Request.Context(), user.ID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	workbook, err := s.exporter.Build(project, analyses, records)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="portfolio-%s.xlsx"`, projectID))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}

// renderMarkdown converts a markdown summary to HTML
func renderMarkdown(source string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(source), p, renderer))
}
