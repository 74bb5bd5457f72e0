package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/vehtax/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"optcurr": FormatOptionalCurrency,
	"pct":     FormatPercentage,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *domain.BatchResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.BatchResult
		Assumptions []string
	}{results, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
