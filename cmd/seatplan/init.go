package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/seatplan/internal/database"
	"github.com/iliyamo/seatplan/internal/repository"
)

var (
	initName             string
	initFloors           []string
	initEditorPassphrase string
	initUsherPassphrase  string
)

// initCmd creates a new store from a name and a list of floor schematics.
//
// Examples:
//
//	seatplan init --store gala.seatplan --name "Gala 2026" \
//	    --floor "0:Ground floor:./ground.png" --floor "1:Gallery:./gallery.jpg"
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new store with its floors",
	Long: `Create the schema of a new store, write its name and version and import
one floor per --floor flag.  A floor is given as level:name:path.  Floors
whose image cannot be read or decoded are skipped and reported; the store
is created with the rest.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if storePath == "" {
			return fmt.Errorf("no store path: pass --store or set STORE_PATH")
		}
		if _, err := os.Stat(storePath); err == nil {
			return fmt.Errorf("store %s already exists", storePath)
		}

		req := repository.InitRequest{
			Name:             initName,
			EditorPassphrase: initEditorPassphrase,
			UsherPassphrase:  initUsherPassphrase,
			BcryptCost:       cfg.BcryptCost,
		}
		for _, raw := range initFloors {
			spec, err := parseFloorSpec(raw)
			if err != nil {
				return err
			}
			img, err := os.ReadFile(spec.path)
			if err != nil {
				return fmt.Errorf("read floor image %s: %w", spec.path, err)
			}
			req.Floors = append(req.Floors, repository.FloorImport{Level: spec.level, Name: spec.name, Image: img})
		}

		db, err := database.Open(storePath)
		if err != nil {
			_ = os.Remove(storePath)
			return err
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()
		report, err := repository.NewStoreRepo(db).Initialize(ctx, req)
		if err != nil {
			// The file was created above; leave nothing behind so init can be retried.
			_ = db.Close()
			if rmErr := os.Remove(storePath); rmErr != nil && !os.IsNotExist(rmErr) {
				log.Printf("init: failed to remove %s: %v", storePath, rmErr)
			}
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "human readable name of the event")
	initCmd.Flags().StringArrayVar(&initFloors, "floor", nil, "floor to import as level:name:path (repeatable)")
	initCmd.Flags().StringVar(&initEditorPassphrase, "editor-passphrase", "", "passphrase for EDITOR sessions")
	initCmd.Flags().StringVar(&initUsherPassphrase, "usher-passphrase", "", "passphrase for USHER sessions")
	_ = initCmd.MarkFlagRequired("name")
}

type floorSpec struct {
	level int
	name  string
	path  string
}

// parseFloorSpec splits "level:name:path".  The path may itself contain
// colons.
func parseFloorSpec(raw string) (floorSpec, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 {
		return floorSpec{}, fmt.Errorf("floor %q: want level:name:path", raw)
	}
	level, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return floorSpec{}, fmt.Errorf("floor %q: level is not a number", raw)
	}
	name := strings.TrimSpace(parts[1])
	if name == "" || strings.TrimSpace(parts[2]) == "" {
		return floorSpec{}, fmt.Errorf("floor %q: name and path are required", raw)
	}
	return floorSpec{level: level, name: name, path: strings.TrimSpace(parts[2])}, nil
}
