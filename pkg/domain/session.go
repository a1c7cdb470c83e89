package domain

import "time"

// TrainingSession is one scheduled IRATA course ("2025-03" style name).
type TrainingSession struct {
	Id     string
	Name   string
	Niveau Niveau

	StartDate time.Time
	EndDate   time.Time

	CreatedAt time.Time
}

type NewSessionParam struct {
	Name      string
	Niveau    Niveau
	StartDate time.Time
	EndDate   time.Time
}

// Attendance is one trainee's signature on one day's attendance sheet.
//
// (session, trainee, day) is unique; re-signing the same day is a conflict.
type Attendance struct {
	SessionId string
	UserId    string
	Day       time.Time
	Signature Signature
	CreatedAt time.Time
}

// InductionEntry is the trainee-facing view of one published induction
// document: the document plus whether this trainee has counter-signed it.
type InductionEntry struct {
	Document      Document
	UserHasSigned bool

	// the trainee's signature, when UserHasSigned.
	UserSignature *Signature
}
