package main

import (
	"context"
	"fmt"
	"time"

	"barberbook/client"

	"github.com/spf13/cobra"
)

func newBarbersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "barbers",
		Short: "List the shop's barbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, _ := cmd.Flags().GetString("server")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			barbers, err := client.New(server).ListBarbers(ctx)
			if err != nil {
				return err
			}
			for _, b := range barbers {
				status := "checked out"
				if b.IsCheckedIn {
					status = "checked in"
				}
				fmt.Printf("%3d  %-20s %s\n", b.ID, b.Name, status)
			}
			return nil
		},
	}
}

func newSlotsCmd() *cobra.Command {
	var barberID int
	var date string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Show free slots for a barber on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, _ := cmd.Flags().GetString("server")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			slots, err := client.New(server).ListSlots(ctx, barberID, date)
			if err != nil {
				return err
			}
			if len(slots) == 0 {
				fmt.Println("no free slots")
				return nil
			}
			for _, s := range slots {
				fmt.Println(s)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&barberID, "barber", 0, "barber id")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("barber")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
