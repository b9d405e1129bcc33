package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/biznexus-ai/backend/internal/config"
	"github.com/biznexus-ai/backend/internal/dataset"
	"github.com/biznexus-ai/backend/internal/sqlstore"
	"github.com/biznexus-ai/backend/internal/storage"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory for generated data files",
		Value:   "./data",
		EnvVars: []string{"APP_DATA_DIR"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Generate sample business data and load it into the SQL store",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Write sample sales.csv and inventory.csv into the data directory",
				Flags: []cli.Flag{
					newDataDirFlag(),
					&cli.IntFlag{
						Name:  "days",
						Usage: "How many days of sales history to generate",
						Value: 90,
					},
					&cli.IntFlag{
						Name:  "items",
						Usage: "How many distinct products to generate",
						Value: 20,
					},
				},
				Action: generateAction,
			},
			{
				Name:  "load",
				Usage: "Load data files from the data directory into the SQL store",
				Flags: []cli.Flag{
					newDataDirFlag(),
				},
				Action: loadAction,
			},
			{
				Name:  "restore",
				Usage: "Download archived uploads from object storage into the data directory",
				Flags: []cli.Flag{
					newDataDirFlag(),
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Only restore objects whose key starts with this prefix",
					},
				},
				Action: restoreAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func generateAction(c *cli.Context) error {
	dir := c.String("data-dir")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	items := sampleItems(c.Int("items"), rng)

	if err := writeInventoryCSV(filepath.Join(dir, "inventory.csv"), items); err != nil {
		return err
	}
	if err := writeSalesCSV(filepath.Join(dir, "sales.csv"), items, c.Int("days"), rng); err != nil {
		return err
	}

	fmt.Printf("wrote sales.csv and inventory.csv to %s\n", dir)
	return nil
}

func loadAction(c *cli.Context) error {
	cfg := config.Load()
	store, err := sqlstore.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("opening SQL store: %w", err)
	}
	defer store.Close()

	dir := c.String("data-dir")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading data dir: %w", err)
	}

	ctx := context.Background()
	loaded := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		raw, err := dataset.Load(path)
		if err != nil {
			log.Printf("skipping %s: %v", e.Name(), err)
			continue
		}
		table := dataset.Normalize(raw)

		name := "seed_" + sqlstore.SanitizeIdent(e.Name())
		if err := store.LoadTable(ctx, name, table); err != nil {
			return fmt.Errorf("loading %s: %w", e.Name(), err)
		}
		fmt.Printf("loaded %s (%d rows) as %s\n", e.Name(), table.Len(), name)
		loaded++
	}

	if loaded == 0 {
		return fmt.Errorf("no loadable files found in %s", dir)
	}
	return nil
}

func restoreAction(c *cli.Context) error {
	cfg := config.Load()
	if !cfg.Archive.Enabled {
		return fmt.Errorf("archiving is not enabled; set the archive endpoint and credentials first")
	}
	archive, err := storage.NewMinioArchive(cfg.Archive)
	if err != nil {
		return fmt.Errorf("connecting to archive: %w", err)
	}

	dir := c.String("data-dir")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	n, err := restoreObjects(context.Background(), archive, dir, c.String("prefix"))
	if err != nil {
		return err
	}
	fmt.Printf("restored %d objects to %s\n", n, dir)
	return nil
}

// restoreObjects downloads every archived object under prefix into dir,
// flattening keys to their base name.
func restoreObjects(ctx context.Context, archive storage.ObjectStorage, dir, prefix string) (int, error) {
	objects, err := archive.ListObjects(ctx, prefix)
	if err != nil {
		return 0, err
	}
	if len(objects) == 0 {
		return 0, fmt.Errorf("no archived objects found under prefix %q", prefix)
	}

	for _, obj := range objects {
		dest := filepath.Join(dir, filepath.Base(obj.Key))
		if err := archive.DownloadObject(ctx, obj.Key, dest); err != nil {
			return 0, err
		}
		fmt.Printf("restored %s (%d bytes)\n", obj.Key, obj.Size)
	}
	return len(objects), nil
}

type seedItem struct {
	id       string
	name     string
	category string
	price    float64
	stock    int
	reorder  int
	leadTime int
}

var seedCatalog = []struct {
	name     string
	category string
}{
	{"Wireless Mouse", "Electronics"},
	{"USB-C Cable", "Electronics"},
	{"Bluetooth Speaker", "Electronics"},
	{"Notebook A5", "Stationery"},
	{"Gel Pen Pack", "Stationery"},
	{"Desk Organizer", "Office"},
	{"Monitor Stand", "Office"},
	{"Coffee Beans 1kg", "Pantry"},
	{"Green Tea Box", "Pantry"},
	{"Water Bottle", "Lifestyle"},
	{"Canvas Tote Bag", "Lifestyle"},
	{"Phone Stand", "Electronics"},
	{"HDMI Adapter", "Electronics"},
	{"Sticky Notes", "Stationery"},
	{"Whiteboard Marker", "Stationery"},
	{"Desk Lamp", "Office"},
	{"Ergonomic Cushion", "Office"},
	{"Protein Bar Box", "Pantry"},
	{"Travel Mug", "Lifestyle"},
	{"Laptop Sleeve", "Lifestyle"},
}

func sampleItems(n int, rng *rand.Rand) []seedItem {
	if n > len(seedCatalog) {
		n = len(seedCatalog)
	}
	items := make([]seedItem, 0, n)
	for i := 0; i < n; i++ {
		entry := seedCatalog[i]
		items = append(items, seedItem{
			id:       fmt.Sprintf("SKU-%03d", i+1),
			name:     entry.name,
			category: entry.category,
			price:    float64(5+rng.Intn(95)) + 0.99,
			stock:    rng.Intn(200),
			reorder:  10 + rng.Intn(40),
			leadTime: 3 + rng.Intn(12),
		})
	}
	return items
}

func writeInventoryCSV(path string, items []seedItem) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"item_id", "item_name", "stock", "reorder_point", "category", "cost", "lead_time"}); err != nil {
		return err
	}
	for _, it := range items {
		record := []string{
			it.id,
			it.name,
			strconv.Itoa(it.stock),
			strconv.Itoa(it.reorder),
			it.category,
			fmt.Sprintf("%.2f", it.price*0.6),
			strconv.Itoa(it.leadTime),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeSalesCSV(path string, items []seedItem, days int, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"date", "item_id", "item_name", "quantity", "price"}); err != nil {
		return err
	}

	now := time.Now()
	for d := days; d > 0; d-- {
		day := now.AddDate(0, 0, -d)
		// A handful of items never sell so dead stock shows up in the dashboard.
		sellable := items
		if len(items) > 3 {
			sellable = items[:len(items)-3]
		}
		for i := 0; i < 1+rng.Intn(5); i++ {
			it := sellable[rng.Intn(len(sellable))]
			qty := 1 + rng.Intn(4)
			record := []string{
				day.Format("2006-01-02"),
				it.id,
				it.name,
				strconv.Itoa(qty),
				fmt.Sprintf("%.2f", it.price),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	return w.Error()
}
