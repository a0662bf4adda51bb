package client

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/tasksure/client/domain"
)

func parseForm(t *testing.T, body []byte, contentType string) *multipart.Reader {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("ParseMediaType() err=%v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("media type=%q, want multipart/form-data", mediaType)
	}
	return multipart.NewReader(bytes.NewReader(body), params["boundary"])
}

func TestEncodeProofForm_TextOnly(t *testing.T) {
	body, contentType, err := encodeProofForm(domain.ProofSubmission{
		TaskID: "1",
		Text:   "finished the chapter",
	})
	if err != nil {
		t.Fatalf("encodeProofForm() err=%v", err)
	}

	reader := parseForm(t, body, contentType)

	part, err := reader.NextPart()
	if err != nil {
		t.Fatalf("NextPart() err=%v", err)
	}
	if part.FormName() != "proof_text" {
		t.Fatalf("FormName()=%q, want proof_text", part.FormName())
	}
	text, _ := io.ReadAll(part)
	if string(text) != "finished the chapter" {
		t.Fatalf("proof_text=%q, want %q", text, "finished the chapter")
	}

	if _, err := reader.NextPart(); err != io.EOF {
		t.Fatalf("extra part present, want EOF")
	}
}

func TestEncodeProofForm_WithAttachment(t *testing.T) {
	body, contentType, err := encodeProofForm(domain.ProofSubmission{
		TaskID: "1",
		Attachment: &domain.ProofAttachment{
			Filename:    "proof.png",
			ContentType: "image/png",
			Data:        []byte{0x89, 0x50, 0x4e, 0x47},
		},
	})
	if err != nil {
		t.Fatalf("encodeProofForm() err=%v", err)
	}

	reader := parseForm(t, body, contentType)

	// proof_text is always present, possibly empty.
	part, err := reader.NextPart()
	if err != nil {
		t.Fatalf("NextPart() err=%v", err)
	}
	if part.FormName() != "proof_text" {
		t.Fatalf("FormName()=%q, want proof_text", part.FormName())
	}
	text, _ := io.ReadAll(part)
	if len(text) != 0 {
		t.Fatalf("proof_text=%q, want empty", text)
	}

	filePart, err := reader.NextPart()
	if err != nil {
		t.Fatalf("NextPart() err=%v", err)
	}
	if filePart.FormName() != "file" {
		t.Fatalf("FormName()=%q, want file", filePart.FormName())
	}
	if filePart.FileName() != "proof.png" {
		t.Fatalf("FileName()=%q, want proof.png", filePart.FileName())
	}
	if got := filePart.Header.Get("Content-Type"); got != "image/png" {
		t.Fatalf("Content-Type=%q, want image/png", got)
	}
	data, _ := io.ReadAll(filePart)
	if !bytes.Equal(data, []byte{0x89, 0x50, 0x4e, 0x47}) {
		t.Fatalf("file bytes=%v, want original data", data)
	}
}
