package models

import (
	"time"

	"github.com/lehigh-university-libraries/callno/internal/callno"
)

// CallNumberJob is one call number construction requested over the API
type CallNumberJob struct {
	ID            string       `json:"id"`
	Library       string       `json:"library"`
	CallType      string       `json:"call_type"`
	Resolved      string       `json:"resolved_call_type,omitempty"`
	ControlNumber string       `json:"control_number,omitempty"`
	MARCRecord    string       `json:"marc_record"`
	Order         callno.Order `json:"order"`
	State         string       `json:"state"`
	CallNumber    string       `json:"call_number,omitempty"`
	Field         string       `json:"field,omitempty"`
	Elements      []string     `json:"elements,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Error         string       `json:"error,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// CallNumberRequest is the body of POST /api/callnumbers
type CallNumberRequest struct {
	Library  string `json:"library"`
	CallType string `json:"call_type"`
	MARC     string `json:"marc"` // mnemonic (MarcEdit) record
	callno.Order
}
