package editor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domproduct "example.com/finproducts-admin/internal/domain/product"
	formuc "example.com/finproducts-admin/internal/usecase/form"
)

var (
	// ErrFormInvalid means the submit was blocked by validation; every
	// field has been marked touched so its errors surface.
	ErrFormInvalid = errors.New("form is invalid")
	// ErrCheckPending means the id uniqueness check has not resolved yet.
	ErrCheckPending = errors.New("id verification still pending")
)

// Notifier receives user-facing success messages.
type Notifier interface {
	Notify(message string)
}

type Config struct {
	Gateway        domproduct.Gateway
	Notifier       Notifier
	Logger         *slog.Logger
	Route          Route
	Now            func() time.Time
	DebounceWindow time.Duration
}

// Service binds a form session to the gateway for one create/edit screen.
type Service struct {
	form     *formuc.Form
	gateway  domproduct.Gateway
	notifier Notifier
	logger   *slog.Logger
	route    Route
}

func NewService(cfg Config) *Service {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	mode := formuc.ModeCreate
	if cfg.Route.Edit {
		mode = formuc.ModeEdit
	}
	return &Service{
		form: formuc.New(formuc.Config{
			Mode:           mode,
			Gateway:        cfg.Gateway,
			Logger:         cfg.Logger,
			Now:            cfg.Now,
			DebounceWindow: cfg.DebounceWindow,
		}),
		gateway:  cfg.Gateway,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		route:    cfg.Route,
	}
}

// Form exposes the screen's validation engine.
func (s *Service) Form() *formuc.Form { return s.form }

// EditMode reports whether the screen updates an existing product.
func (s *Service) EditMode() bool { return s.route.Edit }

// Open loads the initial values. In edit mode the product is fetched once
// by the route id and patched into the form; in create mode there is
// nothing to do.
func (s *Service) Open(ctx context.Context) error {
	if !s.route.Edit {
		return nil
	}
	p, err := s.gateway.GetByID(ctx, s.route.ProductID)
	if err != nil {
		s.logger.Error("failed to load product", "id", s.route.ProductID, "error", err)
		return err
	}
	s.form.SetInitial(p)
	return nil
}

// Submit sends the validated payload to the gateway. An invalid form marks
// every field touched and blocks the call; a pending uniqueness check
// defers it. Success is recognized only by the API's literal message: on a
// match the user is notified and the form resets, on anything else nothing
// is mutated so the user can retry. There is no automatic retry.
func (s *Service) Submit(ctx context.Context) error {
	if s.form.Pending() {
		return ErrCheckPending
	}
	if !s.form.Valid() {
		s.form.MarkAllTouched()
		return ErrFormInvalid
	}

	payload := s.form.Values()

	var (
		res     *domproduct.MutationResult
		err     error
		wantMsg string
	)
	if s.route.Edit {
		// Keyed by the route id, never the disabled field's value.
		res, err = s.gateway.Update(ctx, payload, s.route.ProductID)
		wantMsg = domproduct.MsgUpdated
	} else {
		res, err = s.gateway.Create(ctx, payload)
		wantMsg = domproduct.MsgCreated
	}
	if err != nil {
		s.logger.Error("failed to submit product", "id", payload.ID, "edit", s.route.Edit, "error", err)
		return err
	}

	if res == nil || res.Message != wantMsg {
		got := ""
		if res != nil {
			got = res.Message
		}
		s.logger.Warn("submit response not recognized as success", "id", payload.ID, "message", got)
		return nil
	}

	if s.notifier != nil {
		s.notifier.Notify(res.Message)
	}
	s.form.Reset()
	return nil
}

// Reset blanks the form per its mode.
func (s *Service) Reset() { s.form.Reset() }

// Close releases the screen, cancelling any pending uniqueness check.
func (s *Service) Close() { s.form.Close() }
