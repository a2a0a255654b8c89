package messaging

import (
	"context"
	"errors"

	"github.com/djobea/djobea-ai/pkg/logging"
)

// FailoverSender attempts a primary send, then falls back to a secondary channel on error.
type FailoverSender struct {
	primary       Sender
	secondary     Sender
	primaryName   string
	secondaryName string
	logger        *logging.Logger
}

// NewFailoverSender builds a failover sender with named channels.
func NewFailoverSender(primary Sender, primaryName string, secondary Sender, secondaryName string, logger *logging.Logger) *FailoverSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &FailoverSender{
		primary:       primary,
		secondary:     secondary,
		primaryName:   primaryName,
		secondaryName: secondaryName,
		logger:        logger,
	}
}

var _ Sender = (*FailoverSender)(nil)

// Send tries the primary channel first, then falls back to the secondary channel on failure.
func (f *FailoverSender) Send(ctx context.Context, msg Outbound) error {
	if f == nil || f.primary == nil {
		return errors.New("messaging: failover primary sender not configured")
	}
	if err := f.primary.Send(ctx, msg); err == nil {
		return nil
	} else if f.secondary == nil {
		return err
	} else {
		f.logger.Warn("primary channel send failed; attempting fallback",
			"channel", f.primaryName,
			"fallback", f.secondaryName,
			"error", err,
			"to", msg.To,
		)
		fallbackErr := f.secondary.Send(ctx, msg)
		if fallbackErr != nil {
			f.logger.Error("fallback channel send failed",
				"channel", f.secondaryName,
				"error", fallbackErr,
				"to", msg.To,
			)
			return fallbackErr
		}
		return nil
	}
}
