package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CalendarService/internal/calendar/audit"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/booking"
)

func auditBookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit-bookings",
		Short: "Report overlapping confirmed bookings in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromStr, _ := cmd.Flags().GetString("from")
			toStr, _ := cmd.Flags().GetString("to")

			from, err := time.Parse(domain.DateFormat, fromStr)
			if err != nil {
				return fmt.Errorf("invalid --from %q: %w", fromStr, err)
			}
			to, err := time.Parse(domain.DateFormat, toStr)
			if err != nil {
				return fmt.Errorf("invalid --to %q: %w", toStr, err)
			}
			if to.Before(from) {
				return fmt.Errorf("--to must not be before --from")
			}

			return runAudit(cmd.Context(), from, to)
		},
	}

	today := time.Now().UTC().Format(domain.DateFormat)
	cmd.Flags().String("from", today, "first date to scan (YYYY-MM-DD)")
	cmd.Flags().String("to", today, "last date to scan (YYYY-MM-DD)")

	return cmd
}

func runAudit(ctx context.Context, from, to time.Time) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Close()

	db, err := openDB(cfg, log)
	if err != nil {
		log.Error("%v", err)
		return err
	}
	defer db.Close()

	status := domain.StatusConfirmed
	bookings, err := bookingRepo.NewRepository(db).List(ctx, domain.BookingsFilter{
		StartDate: &from,
		EndDate:   &to,
		Status:    &status,
	})
	if err != nil {
		log.Error("audit-bookings - Failed to list bookings: %v", err)
		return err
	}

	overlaps := audit.FindOverlaps(bookings)
	log.Info("audit-bookings - Scanned %d confirmed bookings from %s to %s, overlaps=%d",
		len(bookings), from.Format(domain.DateFormat), to.Format(domain.DateFormat), len(overlaps))

	for _, o := range overlaps {
		fmt.Printf("OVERLAP %s <-> %s\n", o.First, o.Second)
	}
	if len(overlaps) > 0 {
		return fmt.Errorf("found %d overlapping booking pairs", len(overlaps))
	}
	fmt.Println("no overlapping bookings")
	return nil
}
