package main

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"nyumbaBack/internal/services"
)

const maintenanceRunTimeout = 2 * time.Minute

// startMaintenanceScheduler reminds property owners about upcoming asset
// service every morning at 07:00 local time.
func startMaintenanceScheduler(maintenance *services.MaintenanceService, infoLog, errorLog *log.Logger) {
	if maintenance == nil {
		return
	}

	loc, err := time.LoadLocation("Africa/Douala")
	if err != nil {
		if errorLog != nil {
			errorLog.Printf("maintenance scheduler: failed to load location Africa/Douala: %v", err)
		}
		loc = time.FixedZone("Africa/Douala", 1*60*60)
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc("0 7 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), maintenanceRunTimeout)
		defer cancel()

		reminded, err := maintenance.RemindDue(ctx, time.Now().In(loc))
		if err != nil {
			if errorLog != nil {
				errorLog.Printf("maintenance scheduler: %v", err)
			}
			return
		}
		if reminded > 0 && infoLog != nil {
			infoLog.Printf("maintenance scheduler: sent %d reminders", reminded)
		}
	})
	if err != nil {
		if errorLog != nil {
			errorLog.Printf("maintenance scheduler: failed to schedule: %v", err)
		}
		return
	}
	c.Start()
}
