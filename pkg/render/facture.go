package render

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
)

type factureView struct {
	Numero  string
	Date    string
	Client  string
	Session string
	Montant string
}

var factureTemplate = template.Must(template.New("facture").Parse(`<!doctype html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Facture {{.Numero}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
h1 { font-size: 1.4em; border-bottom: 1px solid #333; padding-bottom: .3em; }
table { margin-top: 2em; border-collapse: collapse; width: 100%; }
td, th { border: 1px solid #999; padding: .5em 1em; text-align: left; }
td.montant { text-align: right; font-weight: bold; }
p.meta { color: #555; }
</style>
</head>
<body>
<h1>Facture {{.Numero}}</h1>
<p class="meta">Émise le {{.Date}}</p>
<p>Client : {{.Client}}</p>
<table>
<tr><th>Désignation</th><th>Montant</th></tr>
<tr><td>Formation cordiste — {{.Session}}</td><td class="montant">{{.Montant}}</td></tr>
</table>
</body>
</html>
`))

// euros formats an amount in cents the French way.
func euros(cents int64) string {
	return fmt.Sprintf("%d,%02d €", cents/100, cents%100)
}

// FactureHTML renders the invoice of a devis to a self-contained HTML page.
//
// The devis id doubles as the invoice number, and the devis' last update
// (its decision) as the issue date.
func FactureHTML(devis domain.Devis, sessionName string) (string, error) {
	sb := new(strings.Builder)
	if err := factureTemplate.Execute(sb, factureView{
		Numero:  devis.Id,
		Date:    devis.UpdatedAt.Format("02/01/2006"),
		Client:  devis.ClientName,
		Session: sessionName,
		Montant: euros(devis.MontantCents),
	}); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderFacture builds the invoice page of a devis and prints it to PDF.
//
// Degrades to the HTML page when printing fails, like Render.
func (r *Renderer) RenderFacture(ctx context.Context, devis domain.Devis, sessionName string) (Rendered, error) {
	html, err := FactureHTML(devis, sessionName)
	if err != nil {
		return Rendered{}, err
	}

	base := "facture-" + devis.Id

	pdf, err := r.engine.PrintToPDF(ctx, html)
	if err != nil {
		r.logger.Warnf("pdf engine failed (falling back to html): facture of devis %s: %s", devis.Id, err)
		return Rendered{
			Filename:    base + ".html",
			ContentType: "text/html; charset=utf-8",
			Body:        []byte(html),
		}, nil
	}

	return Rendered{
		Filename:    base + ".pdf",
		ContentType: "application/pdf",
		Body:        pdf,
	}, nil
}
