package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// form is rejected because required fields are absent or empty.
var ErrMissingFields = errors.New("missing required fields")

// MissingFieldsError lists which required fields a submission lacks.
type MissingFieldsError struct {
	Kind   DocumentKind
	Fields []string
}

var _ error = MissingFieldsError{}

func (e MissingFieldsError) Error() string {
	return fmt.Sprintf(
		"%s submission misses required fields: %s",
		e.Kind, strings.Join(e.Fields, ", "),
	)
}

func (e MissingFieldsError) Unwrap() error {
	return ErrMissingFields
}

// Fields is the per-kind form content of a Document.
//
// Each document kind has its own strongly-typed field set, so required-field
// coverage is checked by the compiler rather than by a string-keyed map.
type Fields interface {
	Kind() DocumentKind

	// Validate returns MissingFieldsError naming every absent required field.
	Validate() error

	// Values flattens the fields to label -> printed value, in a stable
	// order given by Labels of the kind's template. Used by the renderer.
	Values() map[string]string
}

// DecodeFields parses raw JSON form content as the field set of kind.
func DecodeFields(kind DocumentKind, raw json.RawMessage) (Fields, error) {
	var f Fields
	switch kind {
	case KindDisclaimer:
		f = &DisclaimerFields{}
	case KindInduction:
		f = &InductionFields{}
	case KindMedical:
		f = &MedicalFields{}
	case KindToolboxTalk:
		f = &ToolboxTalkFields{}
	case KindCorrectiveAction:
		f = &CorrectiveActionFields{}
	case KindContrat:
		f = &ContratFields{}
	default:
		return nil, fmt.Errorf("'%s' is not a DocumentKind", kind)
	}
	if err := json.Unmarshal(raw, f); err != nil {
		return nil, err
	}
	return f, nil
}

func missing(kind DocumentKind, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return MissingFieldsError{Kind: kind, Fields: fields}
}

// DisclaimerFields is the IRATA liability disclaimer form.
type DisclaimerFields struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (*DisclaimerFields) Kind() DocumentKind { return KindDisclaimer }

func (f *DisclaimerFields) Validate() error {
	miss := []string{}
	if f.Name == "" {
		miss = append(miss, "name")
	}
	if f.Address == "" {
		miss = append(miss, "address")
	}
	return missing(KindDisclaimer, miss...)
}

func (f *DisclaimerFields) Values() map[string]string {
	return map[string]string{
		"name":    f.Name,
		"address": f.Address,
	}
}

// InductionFields is the course-orientation acknowledgment issued per session.
type InductionFields struct {
	CourseDate     string `json:"courseDate"`
	CourseLocation string `json:"courseLocation"`
	Instructor     string `json:"instructor"`
}

func (*InductionFields) Kind() DocumentKind { return KindInduction }

func (f *InductionFields) Validate() error {
	miss := []string{}
	if f.CourseDate == "" {
		miss = append(miss, "courseDate")
	}
	if f.CourseLocation == "" {
		miss = append(miss, "courseLocation")
	}
	if f.Instructor == "" {
		miss = append(miss, "instructor")
	}
	return missing(KindInduction, miss...)
}

func (f *InductionFields) Values() map[string]string {
	return map[string]string{
		"courseDate":     f.CourseDate,
		"courseLocation": f.CourseLocation,
		"instructor":     f.Instructor,
	}
}

// MedicalFields is the medical fitness declaration.
type MedicalFields struct {
	Name          string `json:"name"`
	BirthDate     string `json:"birthDate"`
	FitForWork    bool   `json:"fitForWork"`
	Conditions    string `json:"conditions"`    // free text, may be empty
	Medication    string `json:"medication"`    // free text, may be empty
	DoctorContact string `json:"doctorContact"` // optional
}

func (*MedicalFields) Kind() DocumentKind { return KindMedical }

func (f *MedicalFields) Validate() error {
	miss := []string{}
	if f.Name == "" {
		miss = append(miss, "name")
	}
	if f.BirthDate == "" {
		miss = append(miss, "birthDate")
	}
	return missing(KindMedical, miss...)
}

func (f *MedicalFields) Values() map[string]string {
	fit := "non"
	if f.FitForWork {
		fit = "oui"
	}
	return map[string]string{
		"name":          f.Name,
		"birthDate":     f.BirthDate,
		"fitForWork":    fit,
		"conditions":    f.Conditions,
		"medication":    f.Medication,
		"doctorContact": f.DoctorContact,
	}
}

// ToolboxTalkFields is a safety briefing record.
type ToolboxTalkFields struct {
	Subject   string `json:"subject"`
	Date      string `json:"date"`
	Site      string `json:"site"`
	Presenter string `json:"presenter"`
}

func (*ToolboxTalkFields) Kind() DocumentKind { return KindToolboxTalk }

func (f *ToolboxTalkFields) Validate() error {
	miss := []string{}
	if f.Subject == "" {
		miss = append(miss, "subject")
	}
	if f.Date == "" {
		miss = append(miss, "date")
	}
	if f.Presenter == "" {
		miss = append(miss, "presenter")
	}
	return missing(KindToolboxTalk, miss...)
}

func (f *ToolboxTalkFields) Values() map[string]string {
	return map[string]string{
		"subject":   f.Subject,
		"date":      f.Date,
		"site":      f.Site,
		"presenter": f.Presenter,
	}
}

// CorrectiveActionFields is a remediation task opened from a non-conformité.
type CorrectiveActionFields struct {
	NonConformiteId string `json:"nonConformiteId"`
	Action          string `json:"action"`
	Responsable     string `json:"responsable"`
	Echeance        string `json:"echeance"`
}

func (*CorrectiveActionFields) Kind() DocumentKind { return KindCorrectiveAction }

func (f *CorrectiveActionFields) Validate() error {
	miss := []string{}
	if f.NonConformiteId == "" {
		miss = append(miss, "nonConformiteId")
	}
	if f.Action == "" {
		miss = append(miss, "action")
	}
	if f.Responsable == "" {
		miss = append(miss, "responsable")
	}
	return missing(KindCorrectiveAction, miss...)
}

func (f *CorrectiveActionFields) Values() map[string]string {
	return map[string]string{
		"nonConformiteId": f.NonConformiteId,
		"action":          f.Action,
		"responsable":     f.Responsable,
		"echeance":        f.Echeance,
	}
}

// ContratFields is the training contract generated from a validated devis.
type ContratFields struct {
	DevisId      string `json:"devisId"`
	ClientName   string `json:"clientName"`
	SessionName  string `json:"sessionName"`
	MontantCents int64  `json:"montantCents"`
}

func (*ContratFields) Kind() DocumentKind { return KindContrat }

func (f *ContratFields) Validate() error {
	miss := []string{}
	if f.DevisId == "" {
		miss = append(miss, "devisId")
	}
	if f.ClientName == "" {
		miss = append(miss, "clientName")
	}
	if f.SessionName == "" {
		miss = append(miss, "sessionName")
	}
	return missing(KindContrat, miss...)
}

func (f *ContratFields) Values() map[string]string {
	return map[string]string{
		"devisId":      f.DevisId,
		"clientName":   f.ClientName,
		"sessionName":  f.SessionName,
		"montantCents": fmt.Sprintf("%d", f.MontantCents),
	}
}
