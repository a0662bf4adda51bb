package client

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/tasksure/client/api/transport"
	"github.com/tasksure/client/domain"
)

// SubmitProof uploads the evidence draft for its target task as a
// multipart payload and returns the server's verdict. The verdict may
// still be pending when review is queued server-side.
func (c *Client) SubmitProof(ctx context.Context, sess *domain.Session, submission domain.ProofSubmission) (*domain.ProofVerdict, error) {
	body, contentType, err := encodeProofForm(submission)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "encode proof form", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url("/tasks/" + submission.TaskID + "/proof"))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType(contentType)
	req.SetBody(body)

	if err := c.do(ctx, sess, req, resp); err != nil {
		return nil, err
	}

	var payload transport.ProofVerdictResponse
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	verdict := payload.ToDomain()
	return &verdict, nil
}

// encodeProofForm builds the multipart body: proof_text is always sent
// (possibly empty), the file part only when an attachment is staged.
func encodeProofForm(submission domain.ProofSubmission) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("proof_text", submission.Text); err != nil {
		return nil, "", err
	}

	if att := submission.Attachment; att != nil && len(att.Data) > 0 {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			`form-data; name="file"; filename="`+escapeQuotes(att.Filename)+`"`)
		contentType := att.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(att.Data); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
