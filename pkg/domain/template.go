package domain

import "fmt"

// Template is the static side of a document kind: its legal/informational
// text and the presentation order of its fields.
//
// Pure data. An unknown kind is a configuration error and is fatal at startup.
type Template struct {
	Kind DocumentKind

	// document title, used as PDF filename base too.
	Title string

	// static legal/informational paragraphs, reproduced verbatim on render.
	Body []string

	// field names in presentation order. Must match the kind's Fields type.
	FieldOrder []string

	// human labels per field name.
	Labels map[string]string
}

var templates = map[DocumentKind]Template{
	KindDisclaimer: {
		Kind:  KindDisclaimer,
		Title: "Décharge de responsabilité IRATA",
		Body: []string{
			"Je soussigné(e) reconnais avoir été informé(e) des risques inhérents aux travaux sur cordes et à la formation IRATA.",
			"Je certifie que les renseignements fournis ci-dessous sont exacts et je décharge le centre de formation de toute responsabilité en cas de fausse déclaration.",
		},
		FieldOrder: []string{"name", "address"},
		Labels: map[string]string{
			"name":    "Nom complet",
			"address": "Adresse",
		},
	},
	KindInduction: {
		Kind:  KindInduction,
		Title: "Document d'induction",
		Body: []string{
			"Ce document atteste que le stagiaire a reçu la présentation d'accueil du centre : consignes de sécurité, organisation de la formation et règles du site.",
		},
		FieldOrder: []string{"courseDate", "courseLocation", "instructor"},
		Labels: map[string]string{
			"courseDate":     "Date de formation",
			"courseLocation": "Lieu",
			"instructor":     "Formateur",
		},
	},
	KindMedical: {
		Kind:  KindMedical,
		Title: "Déclaration médicale",
		Body: []string{
			"Le candidat déclare son aptitude médicale aux travaux en hauteur conformément aux exigences IRATA.",
			"Toute condition médicale susceptible d'affecter la sécurité doit être déclarée ci-dessous.",
		},
		FieldOrder: []string{"name", "birthDate", "fitForWork", "conditions", "medication", "doctorContact"},
		Labels: map[string]string{
			"name":          "Nom complet",
			"birthDate":     "Date de naissance",
			"fitForWork":    "Apte au travail",
			"conditions":    "Conditions médicales",
			"medication":    "Traitements en cours",
			"doctorContact": "Médecin traitant",
		},
	},
	KindToolboxTalk: {
		Kind:  KindToolboxTalk,
		Title: "Toolbox Talk",
		Body: []string{
			"Compte rendu de causerie sécurité. Les participants attestent avoir assisté à la présentation du sujet ci-dessous.",
		},
		FieldOrder: []string{"subject", "date", "site", "presenter"},
		Labels: map[string]string{
			"subject":   "Sujet",
			"date":      "Date",
			"site":      "Site",
			"presenter": "Présentateur",
		},
	},
	KindCorrectiveAction: {
		Kind:  KindCorrectiveAction,
		Title: "Action corrective",
		Body: []string{
			"Action corrective ouverte suite à une non-conformité. La clôture requiert la signature du responsable désigné et la contre-signature de l'administrateur.",
		},
		FieldOrder: []string{"nonConformiteId", "action", "responsable", "echeance"},
		Labels: map[string]string{
			"nonConformiteId": "Non-conformité",
			"action":          "Action",
			"responsable":     "Responsable",
			"echeance":        "Échéance",
		},
	},
	KindContrat: {
		Kind:  KindContrat,
		Title: "Contrat de formation",
		Body: []string{
			"Contrat de formation professionnelle établi sur la base du devis validé référencé ci-dessous.",
			"Le présent contrat engage le centre de formation et le client aux conditions générales de vente en vigueur.",
		},
		FieldOrder: []string{"devisId", "clientName", "sessionName", "montantCents"},
		Labels: map[string]string{
			"devisId":      "Référence devis",
			"clientName":   "Client",
			"sessionName":  "Session",
			"montantCents": "Montant (centimes)",
		},
	},
}

// TemplateFor looks up the template of kind.
//
// It panics on unknown kind: templates and kinds are declared together in
// this package, so a miss can only be a programming error.
func TemplateFor(kind DocumentKind) Template {
	t, ok := templates[kind]
	if !ok {
		panic(fmt.Sprintf("no template for document kind '%s'", kind))
	}
	return t
}
