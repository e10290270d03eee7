package order

import (
	"context"
	"time"

	"github.com/storefront/storefront/internal/apperr"
	"github.com/storefront/storefront/internal/email"
	"github.com/storefront/storefront/internal/logger"
)

const (
	defaultSubject   = "Order Confirmed"
	defaultStoreName = "Storefront"
)

// Options configures the confirmation email and dispatch.
type Options struct {
	StoreName string
	Subject   string
	// DispatchTimeout bounds the gateway call; zero means no extra deadline.
	DispatchTimeout time.Duration
}

// Service runs Received -> Validated -> Rendered -> Dispatched -> Succeeded|Failed.
// Nothing is persisted at any step and the gateway is called at most once.
type Service struct {
	sender email.Sender
	opts   Options
	log    *logger.Logger
}

// NewService creates a new order Service
func NewService(sender email.Sender, opts Options, log *logger.Logger) *Service {
	if opts.Subject == "" {
		opts.Subject = defaultSubject
	}
	if opts.StoreName == "" {
		opts.StoreName = defaultStoreName
	}
	return &Service{
		sender: sender,
		opts:   opts,
		log:    log.WithComponent("order"),
	}
}

// Confirm validates req, renders the confirmation and sends it to the customer.
// Validation failures wrap apperr.ErrInvalidInput and never reach the gateway;
// a gateway failure wraps apperr.ErrUpstream.
func (s *Service) Confirm(ctx context.Context, req *Request, requestID string) error {
	log := s.log.WithRequestID(requestID)

	lines, err := req.Validate()
	if err != nil {
		log.Debug().Err(err).Msg("order rejected")
		return err
	}
	log.Debug().Int("lines", len(lines)).Msg("order validated")

	msg, err := Render(*req.CustomerDetails, req.PaymentMethod, lines, RenderOptions{
		StoreName: s.opts.StoreName,
		Subject:   s.opts.Subject,
	})
	if err != nil {
		log.Error().Err(err).Msg("order confirmation rendering failed")
		return apperr.Upstream("render confirmation", err)
	}
	log.Debug().Msg("order confirmation rendered")

	if s.opts.DispatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.DispatchTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := s.sender.Send(ctx, msg); err != nil {
		log.Error().
			Err(err).
			Dur("duration", time.Since(start)).
			Int("lines", len(lines)).
			Msg("order confirmation dispatch failed")
		return apperr.Upstream("send confirmation", err)
	}

	log.Info().
		Dur("duration", time.Since(start)).
		Int("lines", len(lines)).
		Str("payment_method", req.PaymentMethod).
		Msg("order confirmed")
	return nil
}
