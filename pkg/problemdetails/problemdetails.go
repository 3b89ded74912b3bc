package problemdetails

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
)

// ContentType is the media type of a problem details body.
const ContentType = "application/problem+json"

const (
	TypeNotFound      = "not-found"
	TypeInternalError = "internal-error"
)

// ProblemDetail is an RFC 7807 problem document. Reason and Metadata are
// extension members carrying the kratos error reason and metadata.
type ProblemDetail struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail"`
	Instance string            `json:"instance,omitempty"`
	Reason   string            `json:"reason,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func New(status int, problemType, title, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   typeURI(problemType),
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

// FromError converts any error to a problem detail. Errors that are not kratos
// errors become 500s whose detail does not leak the underlying message.
func FromError(err error) *ProblemDetail {
	se := errors.FromError(err)
	status := int(se.Code)
	if status < 400 || status > 599 {
		status = http.StatusInternalServerError
	}

	problemType := TypeInternalError
	if se.Reason != "" {
		problemType = strings.ReplaceAll(strings.ToLower(se.Reason), "_", "-")
	}
	detail := se.Message
	if status >= http.StatusInternalServerError && se.Reason == "" {
		detail = http.StatusText(status)
	}

	p := New(status, problemType, http.StatusText(status), detail)
	p.Reason = se.Reason
	p.Metadata = se.Metadata
	return p
}

// ErrorEncoder writes err as a problem details response. It matches the
// kratos http.EncodeErrorFunc signature.
func ErrorEncoder(w http.ResponseWriter, r *http.Request, err error) {
	p := FromError(err)
	if r != nil && r.URL != nil {
		p.Instance = r.URL.Path
	}
	Write(w, p)
}

// Write writes an RFC 7807 Problem Details response.
func Write(w http.ResponseWriter, p *ProblemDetail) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func typeURI(problemType string) string {
	return fmt.Sprintf("https://shortlink.dev/problems/%s", problemType)
}
