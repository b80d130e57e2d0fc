package fit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"calphad-sn/internal/domain/entity"
	"calphad-sn/internal/handler/http/respond"
)

// FormField is the multipart field carrying the observation CSV.
const FormField = "file"

// readUpload returns the observation CSV of r. The body is either the CSV
// itself (text/csv, text/plain, application/octet-stream or no content type)
// or a multipart form with the CSV in FormField.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (io.Reader, error) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, respond.NewAppError(http.StatusUnsupportedMediaType, "malformed Content-Type header", err)
		}
		mediaType = mt
	}

	switch mediaType {
	case "", "text/csv", "text/plain", "application/octet-stream":
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return bytes.NewReader(data), nil
	case "multipart/form-data":
		return readFormFile(r, maxBytes)
	default:
		return nil, respond.NewAppError(http.StatusUnsupportedMediaType,
			fmt.Sprintf("unsupported content type %q: send text/csv or multipart/form-data", mediaType), nil)
	}
}

func readFormFile(r *http.Request, maxBytes int64) (io.Reader, error) {
	if maxBytes <= 0 {
		maxBytes = 32 << 20
	}
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: multipart form: %v", entity.ErrInvalidInput, err)
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	f, _, err := r.FormFile(FormField)
	if err != nil {
		return nil, &entity.ValidationError{Field: FormField, Message: "multipart field is required"}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read form file: %w", err)
	}
	return bytes.NewReader(data), nil
}

// parseConstant reads the optional constant query parameter.
func parseConstant(r *http.Request) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("constant"))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &entity.ValidationError{Field: "constant", Message: fmt.Sprintf("%q is not a number", raw)}
	}
	return &v, nil
}
