package application

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/bnema/brevio-cli/internal/ports"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// submissionForm is the multipart body of a summary request. It is built
// from a request snapshot and never changes afterwards.
type submissionForm struct {
	request domain.SubmissionRequest
}

var _ ports.MultipartBody = submissionForm{}

func (f submissionForm) fields() [][2]string {
	return [][2]string{
		{"language", f.request.Language},
		{"model", f.request.Model},
		{"category", f.request.Category},
		{"style", f.request.Style},
		{"format", f.request.OutputFormat},
		{"summary_level", f.request.SummaryLevel},
	}
}

func (f submissionForm) WriteMultipart(w *multipart.Writer) error {
	for _, field := range f.fields() {
		if err := w.WriteField(field[0], field[1]); err != nil {
			return fmt.Errorf("write field %s: %w", field[0], err)
		}
	}

	for _, attachment := range f.request.Attachments {
		if err := writeFilePart(w, attachment); err != nil {
			return err
		}
	}
	return nil
}

func writeFilePart(w *multipart.Writer, attachment domain.Attachment) error {
	file, err := os.Open(attachment.Path)
	if err != nil {
		return fmt.Errorf("open attachment %q: %w", attachment.Name, err)
	}
	defer file.Close()

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(attachment.Name)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, quoteEscaper.Replace(attachment.Name)))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create part for %q: %w", attachment.Name, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy attachment %q: %w", attachment.Name, err)
	}
	return nil
}
