package main

import (
	"fmt"

	"barberbook/config"
	"barberbook/database"
	accountRepo "barberbook/database/repository/account"
	barberRepo "barberbook/database/repository/barber"
	shiftRepo "barberbook/database/repository/shift"
	"barberbook/models"
	"barberbook/utils"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with barbers, accounts, and default shifts",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadConfig()
			database.InitDB()

			barbers := barberRepo.NewMongoBarberRepo()
			shifts := shiftRepo.NewMongoShiftRepo()
			accounts := accountRepo.NewMongoAccountRepo()

			existing, err := barbers.GetAll()
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				fmt.Println("Database already has data. Skipping seed.")
				return nil
			}

			pwd, err := utils.HashPassword("password")
			if err != nil {
				return err
			}

			roster := []models.Barber{
				{ID: 1, Name: "Tomy Jones", PhotoURL: "https://i.pravatar.cc/150?u=1", IsActive: true, IsCheckedIn: true},
				{ID: 2, Name: "Mike Wilson", PhotoURL: "https://i.pravatar.cc/150?u=2", IsActive: true},
				{ID: 3, Name: "Jake Martinez", PhotoURL: "https://i.pravatar.cc/150?u=3", IsActive: true},
			}
			logins := []models.Account{
				{Username: "owner", PasswordHash: pwd, Role: models.RoleOwner},
				{Username: "tomy", PasswordHash: pwd, Role: models.RoleBarber, BarberID: 1},
				{Username: "mike", PasswordHash: pwd, Role: models.RoleBarber, BarberID: 2},
				{Username: "jake", PasswordHash: pwd, Role: models.RoleBarber, BarberID: 3},
			}

			for i := range roster {
				if err := barbers.Create(&roster[i]); err != nil {
					return err
				}
			}
			for i := range logins {
				if err := accounts.Create(&logins[i]); err != nil {
					return err
				}
			}

			// Standard 9-5 shifts on every open day; the closed weekday gets
			// no shift so it never yields slots.
			closed := config.AppConfig.ClosedWeekday
			for _, b := range roster {
				for day := 0; day < 7; day++ {
					if day == closed {
						continue
					}
					shift := models.Shift{BarberID: b.ID, Weekday: day, StartHour: 9, EndHour: 17}
					if err := shifts.Save(&shift); err != nil {
						return err
					}
				}
			}

			fmt.Println("Seeded 3 barbers, 4 accounts, and standard 9-5 shifts.")
			return nil
		},
	}
}
