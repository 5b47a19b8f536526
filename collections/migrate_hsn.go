package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// fireworksHSNCode matches services.DefaultHSNCode; duplicated here so the
// schema package stays import-free of the computation engine.
const fireworksHSNCode = "360410"

// MigrateMissingHSNCodes backfills the hsn_code field on products entered
// before the HSN column existed.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateMissingHSNCodes(app *pocketbase.PocketBase) error {
	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return fmt.Errorf("migrate: could not find products collection: %w", err)
	}

	missing, err := app.FindRecordsByFilter(
		productsCol,
		"hsn_code = ''",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query products without HSN: %w", err)
	}

	if len(missing) == 0 {
		return nil
	}

	log.Printf("migrate: found %d product(s) without an HSN code -- backfilling...\n", len(missing))

	for _, product := range missing {
		product.Set("hsn_code", fireworksHSNCode)
		if err := app.Save(product); err != nil {
			log.Printf("migrate: failed to backfill HSN for product %q (%s): %v\n", product.GetString("productname"), product.Id, err)
			continue
		}
	}

	log.Println("migrate: HSN backfill complete.")
	return nil
}
