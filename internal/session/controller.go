// Package session implements the capture → upload → result state machine that
// backs one translation screen.
package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/ironsheep/menu-lens/internal/capture"
	"github.com/ironsheep/menu-lens/internal/imaging"
	"github.com/ironsheep/menu-lens/internal/overlay"
	"github.com/ironsheep/menu-lens/internal/translate"
)

// axisTolerance is how far, in source pixels, a region's edges may lean before
// it is reported as poorly approximated by an axis-aligned overlay.
const axisTolerance = 4.0

// Controller owns the photo and result of one session.
//
// All state changes happen under one mutex that is never held across a capture
// or an upload. Each retake or reset starts a new epoch; capture and upload
// results carry the epoch they started in and are dropped if it has moved on.
type Controller struct {
	id       string
	source   capture.Source
	store    Store
	uploader Uploader
	logger   *slog.Logger
	flights  singleflight.Group

	mu        sync.Mutex
	state     State
	epoch     uint64
	attempt   uint64
	handle    *imaging.Handle
	result    *translate.Result
	err       error
	capturing bool
	listeners []Listener
	pending   []change
}

type change struct{ prev, next State }

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The session id is attached to every record.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a controller in StateLive.
func New(source capture.Source, store Store, uploader Uploader, opts ...Option) *Controller {
	c := &Controller{
		id:       uuid.NewString(),
		source:   source,
		store:    store,
		uploader: uploader,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:    StateLive,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("session", c.id)
	return c
}

// ID returns the session id.
func (c *Controller) ID() string { return c.id }

// AddListener registers l for state changes.
func (c *Controller) AddListener(l Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns a consistent copy of the session.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{ID: c.id, Epoch: c.epoch, State: c.state, Result: c.result, Err: c.err}
	if c.handle != nil {
		h := *c.handle
		s.Handle = &h
	}
	return s
}

// Capture takes a photo. Only allowed in StateLive.
//
// When the camera has no frame the session stays Live and ErrCaptureUnavailable
// is returned. Other capture or storage failures also leave the session Live.
func (c *Controller) Capture(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateLive {
		st := c.state
		c.mu.Unlock()
		return invalid("capture", st)
	}
	if c.capturing {
		c.mu.Unlock()
		return ErrCaptureInProgress
	}
	c.capturing = true
	epoch := c.epoch
	c.mu.Unlock()

	return c.captureInto(ctx, epoch)
}

// Retake discards the held photo and any result or error, then captures a new
// photo. Allowed in every state except Live.
//
// A retake during an upload starts a new epoch: the upload keeps running but its
// response is discarded when it arrives. If the new capture fails the session
// is left Live and the stored file is removed, as on Reset.
func (c *Controller) Retake(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateLive {
		c.mu.Unlock()
		return invalid("retake", StateLive)
	}
	c.epoch++
	epoch := c.epoch
	c.clear()
	c.capturing = true
	c.transition(StateLive)
	c.unlockAndNotify()

	return c.captureInto(ctx, epoch)
}

// Reset returns to StateLive from StateResult or StateError, dropping the
// photo, the result and the stored file. The file is removed after the lock
// is released; until then Capture returns ErrCaptureInProgress.
func (c *Controller) Reset() error {
	c.mu.Lock()
	if c.state != StateResult && c.state != StateError {
		st := c.state
		c.mu.Unlock()
		return invalid("reset", st)
	}
	c.epoch++
	c.clear()
	// capturing stays set while the file is removed, so a capture started in
	// the meantime cannot have its photo deleted.
	c.capturing = true
	c.transition(StateLive)
	c.unlockAndNotify()

	c.discardStored()

	c.mu.Lock()
	c.capturing = false
	c.mu.Unlock()
	return nil
}

// Send uploads the held photo and waits for the outcome.
//
// From StateCaptured it starts the upload and moves to StateUploading. From
// StateError it retries the same photo the same way, dropping the old error.
// From StateUploading it joins the upload already in flight instead of
// starting a second one, so every concurrent caller sees the same outcome from
// a single request. Any other state returns ErrInvalidTransition.
//
// The upload is not tied to ctx: cancelling ctx only stops this caller from
// waiting. If a retake or reset happens before the response arrives, the
// response is discarded and ErrSuperseded is returned.
func (c *Controller) Send(ctx context.Context) (*translate.Result, error) {
	c.mu.Lock()
	var ch <-chan singleflight.Result
	switch {
	case (c.state == StateCaptured || c.state == StateError) && c.handle != nil:
		if c.state == StateError {
			c.logger.Info("re-sending photo after failed upload", "previous_error", c.err)
		}
		c.err = nil
		c.attempt++
		epoch, key := c.epoch, flightKey(c.epoch, c.attempt)
		h := *c.handle
		uploadCtx := context.WithoutCancel(ctx)
		c.transition(StateUploading)
		ch = c.flights.DoChan(key, func() (interface{}, error) {
			return c.upload(uploadCtx, epoch, h)
		})
	case c.state == StateUploading:
		// The current flight resolves under c.mu before it returns, so it is
		// still registered while we hold the lock in this state.
		ch = c.flights.DoChan(flightKey(c.epoch, c.attempt), func() (interface{}, error) {
			return nil, ErrSuperseded
		})
		c.logger.Debug("send joined upload in flight")
	default:
		st := c.state
		c.mu.Unlock()
		return nil, invalid("send", st)
	}
	c.unlockAndNotify()

	select {
	case r := <-ch:
		res, _ := r.Val.(*translate.Result)
		return res, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Overlays projects the held result onto a photo displayed renderWidth wide.
// Only allowed in StateResult.
//
// The scale uses the image width reported by the service.
func (c *Controller) Overlays(renderWidth float64) ([]overlay.Placement, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateResult || c.result == nil {
		return nil, invalid("overlays", c.state)
	}
	scale := overlay.Scale(renderWidth, c.result.ImageWidth)
	return overlay.ProjectAll(c.result.Labeled(), scale), nil
}

// Health runs the advisory pre-flight check. Failures are logged, never fatal.
func (c *Controller) Health(ctx context.Context) (string, bool) {
	hc, ok := c.uploader.(HealthChecker)
	if !ok {
		return "", false
	}
	msg, err := hc.Health(ctx)
	if err != nil {
		c.logger.Warn("translation service health check failed", "error", err)
		return "", false
	}
	c.logger.Info("translation service is up", "message", msg)
	return msg, true
}

func (c *Controller) captureInto(ctx context.Context, epoch uint64) error {
	h, err := c.acquire(ctx)
	if err != nil {
		// capturing is still set, so nothing can store a newer photo meanwhile
		c.discardStored()
	}

	c.mu.Lock()
	c.capturing = false
	if err != nil {
		c.mu.Unlock()
		if errors.Is(err, capture.ErrNoFrame) {
			c.logger.Debug("capture produced no frame")
			return ErrCaptureUnavailable
		}
		c.logger.Warn("capture failed", "error", err)
		return err
	}
	if c.epoch != epoch || c.state != StateLive {
		c.mu.Unlock()
		c.logger.Debug("discarding capture from old epoch", "epoch", epoch)
		return ErrSuperseded
	}
	c.handle = h
	c.transition(StateCaptured)
	c.unlockAndNotify()
	return nil
}

func (c *Controller) acquire(ctx context.Context) (*imaging.Handle, error) {
	frame, err := c.source.Capture(ctx)
	if err != nil {
		return nil, err
	}
	if frame == nil {
		return nil, capture.ErrNoFrame
	}
	return c.store.Save(ctx, frame)
}

func (c *Controller) upload(ctx context.Context, epoch uint64, h imaging.Handle) (*translate.Result, error) {
	res, err := c.uploader.Send(ctx, h)
	if err == nil && res == nil {
		err = &translate.Error{Kind: translate.KindMalformedResponse, Message: "empty result"}
	}

	c.mu.Lock()
	if c.epoch != epoch || c.state != StateUploading {
		c.mu.Unlock()
		c.logger.Info("discarding stale upload response", "epoch", epoch)
		return nil, ErrSuperseded
	}

	if err != nil {
		c.result = nil
		c.err = err
		c.logger.Warn("upload failed", "error", err)
		c.transition(StateError)
		c.unlockAndNotify()
		return nil, err
	}

	if res.ImageWidth != h.Width || res.ImageHeight != h.Height {
		c.logger.Warn("service measured a different image size; overlays use the service size",
			"service_width", res.ImageWidth, "service_height", res.ImageHeight,
			"photo_width", h.Width, "photo_height", h.Height)
	}
	if skewed := countSkewed(res.Regions); skewed > 0 {
		c.logger.Debug("regions are not axis aligned; overlays are approximate", "count", skewed)
	}

	c.result = res
	c.err = nil
	c.transition(StateResult)
	c.unlockAndNotify()
	return res, nil
}

// clear drops everything the session holds. Caller holds c.mu.
func (c *Controller) clear() {
	c.handle = nil
	c.result = nil
	c.err = nil
}

// transition records a state change. Caller holds c.mu.
func (c *Controller) transition(next State) {
	prev := c.state
	c.state = next
	c.logger.Debug("session state transition", "from", prev.String(), "to", next.String(), "epoch", c.epoch)
	c.pending = append(c.pending, change{prev, next})
}

// unlockAndNotify releases c.mu and then runs listeners for pending changes.
func (c *Controller) unlockAndNotify() {
	changes := c.pending
	c.pending = nil
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, ch := range changes {
		for _, l := range listeners {
			l(ch.prev, ch.next)
		}
	}
}

// discardStored removes the stored photo. Failures are logged only.
func (c *Controller) discardStored() {
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("failed to remove photo", "error", err)
	}
}

func flightKey(epoch, attempt uint64) string {
	return strconv.FormatUint(epoch, 10) + "." + strconv.FormatUint(attempt, 10)
}

func countSkewed(regions []translate.Region) int {
	n := 0
	for _, r := range regions {
		if !r.Polygon.AxisAligned(axisTolerance) {
			n++
		}
	}
	return n
}
