// Package submission defines the wire payload posted to the relay endpoint
// and the client-side assembly of that payload.
package submission

import (
	"time"

	"github.com/olivepayment/pos-intake/internal/attachment"
)

// Payload is the JSON body of one submission. Beyond the identifying subset
// duplicated at the top level, the generated PDF attachment is the source of
// truth; Fields carries the flat record so the relay can re-derive a full
// text summary and a fallback PDF without the client copy.
type Payload struct {
	FormType       string `json:"formType"`
	ApplicantName  string `json:"applicantName"`
	ApplicantEmail string `json:"applicantEmail"`
	ApplicantPhone string `json:"applicantPhone"`

	// Headline holds the form's monetary fields with grouping separators
	// stripped, keyed by field name.
	Headline map[string]string `json:"headline,omitempty"`

	Fields      map[string]string   `json:"fields,omitempty"`
	MultiFields map[string][]string `json:"multiFields,omitempty"`
	FileLabels  map[string]string   `json:"fileLabels,omitempty"`

	SubmittedAt time.Time               `json:"submittedAt"`
	Attachments []attachment.Attachment `json:"attachments"`
}

// Response is the relay endpoint's reply.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
