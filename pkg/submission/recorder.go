package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-formalise/pkg/form"
	"github.com/goliatone/go-formalise/pkg/model"
)

// Recorder prepares and saves submissions.
type Recorder struct {
	store Store
	cost  int
	now   func() time.Time
	newID func() string
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithCost sets the bcrypt cost used for password fields.
func WithCost(cost int) Option {
	return func(r *Recorder) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			r.cost = cost
		}
	}
}

// WithClock overrides the time source of CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides ULID generation.
func WithIDGenerator(fn func() string) Option {
	return func(r *Recorder) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// NewRecorder returns a Recorder saving into store.
func NewRecorder(store Store, options ...Option) *Recorder {
	r := &Recorder{
		store: store,
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
		newID: func() string { return ulid.Make().String() },
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Record stores values submitted for def. Password fields never reach the
// store in clear text.
func (r *Recorder) Record(ctx context.Context, def model.Form, values model.Values) (*Submission, error) {
	if r.store == nil {
		return nil, fmt.Errorf("submission: store is required")
	}
	hashed, err := r.hashPasswords(def.Fields(), values.Clone())
	if err != nil {
		return nil, err
	}

	s := Submission{
		ID:        r.newID(),
		FormID:    def.ID,
		Values:    hashed,
		CreatedAt: r.now().UTC(),
	}
	if err := r.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("submission: save %q: %w", def.ID, err)
	}
	return &s, nil
}

// SubmitFunc adapts the recorder to a form submit handler. onSaved, when set,
// receives every stored submission.
func (r *Recorder) SubmitFunc(def model.Form, onSaved func(*Submission)) form.SubmitFunc {
	return func(ctx context.Context, values model.Values, _ form.Event) error {
		s, err := r.Record(ctx, def, values)
		if err != nil {
			return err
		}
		if onSaved != nil {
			onSaved(s)
		}
		return nil
	}
}

func (r *Recorder) hashPasswords(fields []model.Field, values model.Values) (model.Values, error) {
	for _, field := range fields {
		switch field.Kind {
		case model.KindPassword:
			plain := values.String(field.Name)
			if plain == "" {
				continue
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(plain), r.cost)
			if err != nil {
				return nil, fmt.Errorf("submission: hash %q: %w", field.Name, err)
			}
			values[field.Name] = string(hash)
		case model.KindArray:
			// Records share the maps of values, hashing updates them in place.
			for _, record := range values.Records(field.Name) {
				if _, err := r.hashPasswords(field.Item, model.Values(record)); err != nil {
					return nil, err
				}
			}
		}
	}
	return values, nil
}

// CheckPassword reports whether plain matches a hash produced by Record.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
