package analyzer

import "pdf-smart-tools/internal/domain"

// SmartSummary combines key points, headings from every page and key
// statistics into a document overview.
func SmartSummary(doc *domain.Document) domain.SmartSummary {
	if doc == nil {
		return domain.SmartSummary{
			Summary:  []string{},
			Headings: []string{},
			KeyStats: []string{},
		}
	}

	var allLines []string
	for _, page := range doc.Pages {
		allLines = append(allLines, page.Lines...)
	}

	headings := DetectHeadings(allLines)
	if len(headings) > MaxSummaryHeadings {
		headings = headings[:MaxSummaryHeadings]
	}

	return domain.SmartSummary{
		Summary:  ExtractKeyPoints(doc.FullText, DefaultKeyPoints),
		Headings: headings,
		KeyStats: ExtractStatistics(doc.FullText),
	}
}
