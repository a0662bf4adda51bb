package domain

import "strings"

// ProofAttachment is a binary evidence file staged for upload.
type ProofAttachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProofSubmission is the transient draft built while a user composes
// evidence for a selected task. At least one of Text or Attachment must
// be present before it may be submitted.
type ProofSubmission struct {
	TaskID     string
	Text       string
	Attachment *ProofAttachment
}

// HasEvidence reports whether the draft satisfies the submission guard.
func (p ProofSubmission) HasEvidence() bool {
	return strings.TrimSpace(p.Text) != "" || (p.Attachment != nil && len(p.Attachment.Data) > 0)
}

// Validate returns a validation error when the draft carries no evidence.
func (p ProofSubmission) Validate() error {
	if !p.HasEvidence() {
		return WrapError(ErrCodeInvalid, "provide text or image proof", ErrInvalidPayload)
	}
	return nil
}

// ProofVerdict is the server's response to a proof submission. Pending
// is a valid outcome: the submission succeeded and review is queued.
type ProofVerdict struct {
	Status   ProofStatus `json:"proof_status"`
	Feedback string      `json:"proof_feedback,omitempty"`
}
