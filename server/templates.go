package server

import (
	"html/template"
	"net/http"
)

type metricViewData struct {
	Name        string
	Value       string
	Explanation string
}

type marketPage struct {
	MarketType string
	Symbol     string
	Metrics    []metricViewData
}

type compareRow struct {
	Name        string
	Spot        string
	Futures     string
	Explanation string
}

type comparePage struct {
	Symbol string
	Rows   []compareRow
}

type rationalePage struct {
	Title     string
	Symbol    string
	Score     int
	Rationale string
}

var marketTmpl = template.Must(template.New("market").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.MarketType}} Market Analysis - {{.Symbol}}</title></head>
<body>
<h1>{{.MarketType}} Market Analysis: {{.Symbol}}</h1>
<table border="1" cellpadding="6">
<tr><th>Metric</th><th>Value</th><th>Explanation</th></tr>
{{range .Metrics}}<tr><td>{{.Name}}</td><td>{{.Value}}</td><td>{{.Explanation}}</td></tr>
{{end}}</table>
</body>
</html>
`))

var compareTmpl = template.Must(template.New("compare").Parse(`<!DOCTYPE html>
<html>
<head><title>Spot vs Futures - {{.Symbol}}</title></head>
<body>
<h1>Spot vs Futures: {{.Symbol}}</h1>
<table border="1" cellpadding="6">
<tr><th>Metric</th><th>Spot</th><th>Futures</th><th>Explanation</th></tr>
{{range .Rows}}<tr><td>{{.Name}}</td><td>{{.Spot}}</td><td>{{.Futures}}</td><td>{{.Explanation}}</td></tr>
{{end}}</table>
</body>
</html>
`))

var rationaleTmpl = template.Must(template.New("rationale").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}} - {{.Symbol}}</title></head>
<body>
<h1>{{.Title}}: {{.Symbol}}</h1>
<p>Bullishness score: <strong>{{.Score}}</strong> / 10</p>
<pre>{{.Rationale}}</pre>
</body>
</html>
`))

func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.log.LogError(err, nil)
	}
}
