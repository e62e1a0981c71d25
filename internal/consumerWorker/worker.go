package consumerWorker

import (
	"context"
	"encoding/json"

	"github.com/wb-go/wbf/zlog"

	"conftrack/internal/dto"
	"conftrack/internal/mailer"
	"conftrack/internal/rabbit"
)

// Reader consumes registration notices published by the registration
// endpoint and sends the confirmation e-mails out of the request path.
type Reader struct {
	RMQ    *rabbit.Client
	mail   *mailer.Mailer
	done   chan struct{}
	cancel context.CancelFunc
}

func NewReader(rmq *rabbit.Client, mail *mailer.Mailer) *Reader {
	return &Reader{
		RMQ:  rmq,
		mail: mail,
		done: make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("registration notice reader started")

	go func() {
		defer close(r.done)

		handler := func(body []byte) error {
			var msg dto.RegistrationNoticeMessage
			if err := json.Unmarshal(body, &msg); err != nil {
				zlog.Logger.Error().
					Err(err).
					Msgf("Failed to unmarshal message: %s", string(body))
				return err
			}

			zlog.Logger.Info().
				Int64("user_id", msg.UserID).
				Int64("activity_id", msg.ActivityID).
				Msg("received registration notice")

			if err := r.mail.SendRegistrationEmail(
				msg.Email, msg.Title, msg.Date, msg.StartTime, msg.Room,
			); err != nil {
				zlog.Logger.Warn().
					Err(err).
					Int64("activity_id", msg.ActivityID).
					Msg("Failed to send confirmation e-mail")
			}

			// Mail failures are not requeued: the registration itself
			// succeeded and retrying a dead mailbox forever helps nobody.
			return nil
		}

		if err := r.RMQ.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("Failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("registration notice reader stopped by context")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
