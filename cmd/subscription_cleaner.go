package main

import (
	"context"
	"log"
	"time"

	"nyumbaBack/internal/services"
)

const subscriptionCleanerTimeout = 1 * time.Minute

// startSubscriptionCleaner expires lapsed subscriptions once a day and
// archives the listings of providers who no longer pay for slots.
func startSubscriptionCleaner(ctx context.Context, subs *services.SubscriptionService, infoLog, errorLog *log.Logger) {
	if subs == nil {
		return
	}

	loc, err := time.LoadLocation("Africa/Douala")
	if err != nil {
		if errorLog != nil {
			errorLog.Printf("subscription cleaner: failed to load location Africa/Douala: %v", err)
		}
		loc = time.FixedZone("Africa/Douala", 1*60*60)
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, subscriptionCleanerTimeout)
			processed, err := subs.ArchiveExpired(runCtx, time.Now().In(loc).UTC())
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("subscription cleaner: failed to archive expired subscriptions: %v", err)
				}
			} else if processed > 0 && infoLog != nil {
				infoLog.Printf("subscription cleaner: archived listings for %d expired subscriptions", processed)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
