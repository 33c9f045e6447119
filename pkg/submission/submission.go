package submission

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-formalise/pkg/model"
)

// ErrNotFound is returned when a submission does not exist.
var ErrNotFound = errors.New("submission: not found")

// Submission is a stored, submitted form.
type Submission struct {
	ID        string       `json:"id"`
	FormID    string       `json:"formId"`
	Values    model.Values `json:"values"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Store persists submissions.
type Store interface {
	Save(ctx context.Context, s Submission) error
	Get(ctx context.Context, id string) (*Submission, error)
}
