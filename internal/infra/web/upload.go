package web

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"subscription-storefront/internal/domain"
	"subscription-storefront/internal/infra/metrics"
)

const (
	screenshotField = "transferScreenshot"
	maxUploadBytes  = 5 << 20
	// multipart form overhead on top of the file itself
	maxOrderBodyBytes = maxUploadBytes + 1<<20
)

var errBodyTooLarge = domain.Invalid("حجم الملف يتجاوز الحد المسموح (5 ميجابايت)")

// readScreenshot extracts, validates and stores the optional screenshot of
// an order submission. It returns the stored filename, or "" when the field
// was absent. The 5 MB ceiling and the image-only MIME filter are enforced
// before any business logic; on rejection nothing is written to disk.
func (s *Server) readScreenshot(r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			metrics.IncUploadRejected("size")
			return "", errBodyTooLarge
		}
		return "", domain.Invalid("تعذر قراءة بيانات الطلب")
	}

	file, header, err := r.FormFile(screenshotField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", domain.Invalid("تعذر قراءة الملف المرفق")
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		metrics.IncUploadRejected("size")
		return "", errBodyTooLarge
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		metrics.IncUploadRejected("mime")
		return "", domain.Invalid("يسمح فقط برفع ملفات الصور")
	}

	// The declared type is client-controlled; sniff the payload as well.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", domain.Invalid("تعذر قراءة الملف المرفق")
	}
	head = head[:n]
	if !strings.HasPrefix(http.DetectContentType(head), "image/") {
		metrics.IncUploadRejected("mime")
		return "", domain.Invalid("يسمح فقط برفع ملفات الصور")
	}

	name, err := s.shots.Save(io.MultiReader(bytes.NewReader(head), file), header.Filename)
	if err != nil {
		return "", err
	}
	return name, nil
}
