package tracking

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"seatwise/config"
)

const TypeTrackingRecord = "tracking:record"

// Event is the payload of one tracking record.
type Event struct {
	SiteID     string    `json:"site_id"`
	BookingID  string    `json:"booking_id"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Sink receives booking tracking events for external analytics.
// Record is fire-and-forget: it must never block or fail the action
// that emitted it.
type Sink interface {
	Record(siteID, bookingID string)
}

// AsynqSink enqueues tracking events onto the background queue; the
// worker persists them out of band.
type AsynqSink struct {
	client *asynq.Client
	logger *zap.Logger
}

// NewAsynqSink constructs a sink backed by the tracking queue.
func NewAsynqSink(logger *zap.Logger) *AsynqSink {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTrackingDB,
	})
	return &AsynqSink{client: client, logger: logger}
}

func (s *AsynqSink) Record(siteID, bookingID string) {
	payload, err := json.Marshal(Event{
		SiteID:     siteID,
		BookingID:  bookingID,
		RecordedAt: time.Now(),
	})
	if err != nil {
		s.logger.Warn("failed to marshal tracking event", zap.Error(err))
		return
	}
	if _, err := s.client.Enqueue(asynq.NewTask(TypeTrackingRecord, payload)); err != nil {
		// Tracking is best effort; the primary action already succeeded.
		s.logger.Warn("failed to enqueue tracking event",
			zap.String("bookingID", bookingID), zap.Error(err))
	}
}

// Close releases the underlying queue client.
func (s *AsynqSink) Close() error {
	return s.client.Close()
}

// NoopSink discards all events.
type NoopSink struct{}

func (NoopSink) Record(siteID, bookingID string) {}
