package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/seatplan/internal/database"
	"github.com/iliyamo/seatplan/internal/repository"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that a store can be opened by this release",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		store := repository.NewStoreRepo(db)
		version, _ := store.Version(ctx)
		seats, _ := repository.NewSeatRepo(db).Count(ctx)
		guests, _ := repository.NewGuestRepo(db).Count(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "store:   %s\nname:    %s\nversion: %d (current %d)\nseats:   %d\nguests:  %d\n",
			storePath, store.Name(ctx), version, repository.CurrentStoreVersion, seats, guests)
		return nil
	},
}

// openStore opens the store at storePath and refuses files that are not
// valid stores or were written with another schema version.
func openStore(cmd *cobra.Command) (*sql.DB, error) {
	if storePath == "" {
		return nil, fmt.Errorf("no store path: pass --store or set STORE_PATH")
	}
	if _, err := os.Stat(storePath); err != nil {
		return nil, fmt.Errorf("store %s cannot be opened: %w", storePath, err)
	}
	db, err := database.Open(storePath)
	if err != nil {
		return nil, err
	}
	store := repository.NewStoreRepo(db)
	if !store.IsValid(cmd.Context()) {
		db.Close()
		return nil, fmt.Errorf("%s is not a valid store", storePath)
	}
	if !store.IsVersionCurrent(cmd.Context()) {
		db.Close()
		return nil, fmt.Errorf("%s was written by another version of seatplan", storePath)
	}
	return db, nil
}
