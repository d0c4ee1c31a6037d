// Package jobs runs background work outside request handling.
//
// IntegrityAuditor schedules the catalog integrity audit on a gocron
// scheduler in singleton mode, so a slow audit never overlaps the next one:
//
//	auditor := jobs.NewIntegrityAuditor(jobs.IntegrityAuditorConfig{
//	    Auditor:  integrityService,
//	    Interval: time.Hour,
//	    Repair:   true,
//	})
//	if err := auditor.Start(); err != nil { ... }
//	defer auditor.Stop()
//
// Failed runs are logged and retried on the next tick.
package jobs
