package main

import (
	"context"
	"fmt"
	"time"

	"barberbook/client"
	"barberbook/workflow"

	"github.com/spf13/cobra"
)

func newBookCmd() *cobra.Command {
	var (
		barberID int
		date     string
		slot     string
		name     string
		service  string
	)

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment",
		Long:  "Runs the full booking workflow: barber, date, slot, then submission.",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, _ := cmd.Flags().GetString("server")
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			day, err := workflow.ParseDate(date)
			if err != nil {
				return err
			}

			m := workflow.NewMachine(client.New(server))
			changes := make(chan workflow.Snapshot, 16)
			m.OnChange(func(s workflow.Snapshot) {
				select {
				case changes <- s:
				default:
				}
			})
			defer m.Close()

			if err := m.Open(ctx); err != nil {
				return fmt.Errorf("could not load barbers: %w", err)
			}
			if err := m.ChooseBarber(barberID); err != nil {
				return err
			}
			if err := m.ChooseDate(day); err != nil {
				return err
			}

			// Wait for the slot fetch to settle.
			snap, err := waitFor(ctx, changes, func(s workflow.Snapshot) bool {
				return s.State == workflow.StateDateChosen && !s.SlotsLoading
			})
			if err != nil {
				return err
			}
			if snap.SlotsFailed {
				return fmt.Errorf("could not load availability")
			}
			if len(snap.Slots) == 0 {
				return fmt.Errorf("no free slots for barber %d on %s", barberID, date)
			}

			// Default to the earliest free slot when none was requested.
			if slot == "" {
				slot = snap.Slots[0]
			}
			if err := m.ChooseSlot(slot); err != nil {
				return err
			}
			m.SetCustomerName(name)
			if service != "" {
				m.SetService(service)
			}

			if err := m.Submit(); err != nil {
				return err
			}
			snap, err = waitFor(ctx, changes, func(s workflow.Snapshot) bool {
				return s.State == workflow.StateSucceeded || s.State == workflow.StateFailed
			})
			if err != nil {
				return err
			}
			if snap.State == workflow.StateFailed {
				return fmt.Errorf("booking rejected: %s", snap.FailureReason)
			}

			fmt.Printf("Booked %s at %s with barber %d for %s\n", date, slot, barberID, name)
			return nil
		},
	}

	cmd.Flags().IntVar(&barberID, "barber", 0, "barber id")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&slot, "time", "", "slot label, e.g. 14:30 (default: earliest free)")
	cmd.Flags().StringVar(&name, "name", "", "customer name")
	cmd.Flags().StringVar(&service, "service", "", "service id (haircut, hairwashing, beard)")
	_ = cmd.MarkFlagRequired("barber")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// waitFor drains workflow snapshots until one satisfies the predicate.
func waitFor(ctx context.Context, changes <-chan workflow.Snapshot, done func(workflow.Snapshot) bool) (workflow.Snapshot, error) {
	for {
		select {
		case snap := <-changes:
			if done(snap) {
				return snap, nil
			}
		case <-ctx.Done():
			return workflow.Snapshot{}, ctx.Err()
		}
	}
}
