package core

import "time"

// NewTime creates the time service that paces the idle loop.
func NewTime(cfg TimeConfiguration) Time {
	delay := time.Duration(cfg.EventPollDelay) * time.Millisecond
	if delay <= 0 {
		delay = time.Millisecond
	}
	return Time{
		eventPollDelay: delay,
		eventTicker:    time.NewTicker(delay),
	}
}

// Time contains the tickers that pace the event loop.
type Time struct {
	eventPollDelay time.Duration
	eventTicker    *time.Ticker
}

// EventTicker gets the initialized event ticker for the event loop.
func (t *Time) EventTicker() *time.Ticker {
	return t.eventTicker
}

// Stop releases the tickers.
func (t *Time) Stop() {
	t.eventTicker.Stop()
}
