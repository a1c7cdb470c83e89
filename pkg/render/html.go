package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
)

type signatureView struct {
	Caption  string
	Img      template.HTML
	SignedAt string
}

// signatureImg builds the <img> element by hand. html/template's URL
// normalizer entity-escapes the base64 payload ("+" becomes "&#43;"),
// and signature images must be embedded byte-for-byte as signed. The
// dataurl package has validated the payload on the way in, and base64
// never contains quotes or angle brackets.
func signatureImg(s domain.Signature, caption string) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<img src="%s" alt="%s">`,
		s.Image.String(), template.HTMLEscapeString(caption),
	))
}

type fieldView struct {
	Label string
	Value string
}

type documentView struct {
	Title      string
	Body       []string
	Fields     []fieldView
	Signatures []signatureView
}

var documentTemplate = template.Must(template.New("document").Parse(`<!doctype html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
h1 { font-size: 1.4em; border-bottom: 1px solid #333; padding-bottom: .3em; }
dt { font-weight: bold; margin-top: .6em; }
section.signatures { margin-top: 2em; display: flex; gap: 3em; }
section.signatures img { max-height: 6em; border-bottom: 1px solid #999; }
section.signatures p { font-size: .8em; color: #555; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Body}}<p>{{.}}</p>
{{end}}<dl>
{{range .Fields}}<dt>{{.Label}}</dt><dd>{{.Value}}</dd>
{{end}}</dl>
<section class="signatures">
{{range .Signatures}}<div>
<h2>{{.Caption}}</h2>
{{.Img}}
<p>{{.SignedAt}}</p>
</div>
{{end}}</section>
</body>
</html>
`))

const signedAtFormat = "02/01/2006 15:04"

// DocumentHTML renders a document to a self-contained HTML page.
//
// extraSignatures lets callers append per-user signatures (induction
// sign-off) after the document's own ones.
func DocumentHTML(doc domain.Document, extraSignatures ...domain.Signature) (string, error) {
	tpl := domain.TemplateFor(doc.Kind)
	values := doc.Fields.Values()

	fields := make([]fieldView, 0, len(tpl.FieldOrder))
	for _, name := range tpl.FieldOrder {
		fields = append(fields, fieldView{
			Label: tpl.Labels[name],
			Value: values[name],
		})
	}

	signatures := []signatureView{}
	if s := doc.PrimarySignature; s != nil {
		signatures = append(signatures, signatureView{
			Caption:  "Signature",
			Img:      signatureImg(*s, "Signature"),
			SignedAt: s.SignedAt.Format(signedAtFormat),
		})
	}
	if s := doc.CounterSignature; s != nil {
		signatures = append(signatures, signatureView{
			Caption:  "Contre-signature",
			Img:      signatureImg(*s, "Contre-signature"),
			SignedAt: s.SignedAt.Format(signedAtFormat),
		})
	}
	for _, s := range extraSignatures {
		signatures = append(signatures, signatureView{
			Caption:  "Signature stagiaire",
			Img:      signatureImg(s, "Signature stagiaire"),
			SignedAt: s.SignedAt.Format(signedAtFormat),
		})
	}

	sb := new(strings.Builder)
	if err := documentTemplate.Execute(sb, documentView{
		Title:      tpl.Title,
		Body:       tpl.Body,
		Fields:     fields,
		Signatures: signatures,
	}); err != nil {
		return "", err
	}
	return sb.String(), nil
}
