package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/leengari/datatable/internal/config"
	"github.com/leengari/datatable/internal/domain/data"
	"github.com/leengari/datatable/internal/domain/schema"
	"github.com/leengari/datatable/internal/engine"
	"github.com/leengari/datatable/internal/logging"
	"github.com/leengari/datatable/internal/source"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, closeFn := logging.SetupLogger(logging.Options{
		Level:  logging.ParseLevel(cfg.LogLevel),
		SeqURL: cfg.SeqURL,
	})
	defer closeFn()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("datatable failed", "error", err)
		closeFn()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	// 1. Build table
	table := schema.NewTable(cfg.TableName,
		schema.WithLogger(logger),
		schema.WithStrictMode(cfg.Strict),
		schema.WithObserver(engine.NewLoggingObserver(logger, slog.LevelDebug)),
	)
	logger.Info("table created",
		slog.String("table", table.TableName()),
		slog.String("table_id", table.ID.String()),
		slog.Bool("strict", table.StrictMode()),
	)

	// 2. Load rows
	if err := loadRows(cfg, table); err != nil {
		return err
	}
	logger.Info("rows loaded",
		slog.Any("columns", table.Columns()),
		slog.Int("rows", table.RowCount()),
	)

	// 3. Reshape: add a column and fill it in
	if err := table.AddColumn("loaded_at"); err != nil {
		return err
	}
	now := time.Now().Format(time.RFC3339)
	for i := 0; i < table.RowCount(); i++ {
		if err := table.SetCell(i, "loaded_at", now); err != nil {
			return err
		}
	}

	// 4. Append a row built from the template
	row := table.NewRow()
	if cols := table.Columns(); len(cols) > 0 {
		row.Set(cols[0], "(template)")
	}
	if err := table.AddRow(row); err != nil {
		return err
	}

	// 5. A row with the wrong shape is rejected in strict mode
	if err := table.AddRow(data.NewRow(data.Field{Name: "unexpected", Value: true})); err != nil {
		logger.Warn("row rejected", "error", err)
	}

	// 6. Clone the schema for an empty working copy
	clone := table.CloneSchema()
	logger.Info("schema cloned",
		slog.String("clone_id", clone.ID.String()),
		slog.Any("columns", clone.Columns()),
		slog.Int("rows", clone.RowCount()),
	)

	// 7. Emit the result
	if err := source.WriteJSON(os.Stdout, table.Rows()); err != nil {
		return err
	}

	table.Dispose()
	logger.Info("done")
	return nil
}

func loadRows(cfg *config.Config, table *schema.Table) error {
	switch {
	case cfg.DSN != "":
		db, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return source.Load(ctx, db, table, cfg.Query)

	case cfg.JSONFile != "":
		f, err := os.Open(cfg.JSONFile)
		if err != nil {
			return err
		}
		defer f.Close()

		rows, err := source.ReadJSON(f)
		if err != nil {
			return err
		}
		return table.LoadRows(rows)

	default:
		return table.LoadRows(sampleRows())
	}
}

// sampleRows stands in for a query result
func sampleRows() []data.Row {
	return []data.Row{
		data.NewRow(data.Field{Name: "no", Value: 1}, data.Field{Name: "name", Value: "taro"}, data.Field{Name: "age", Value: nil}),
		data.NewRow(data.Field{Name: "no", Value: 2}, data.Field{Name: "name", Value: "jiro"}, data.Field{Name: "age", Value: 20}),
		data.NewRow(data.Field{Name: "no", Value: 3}, data.Field{Name: "name", Value: "saburo"}, data.Field{Name: "age", Value: 30}),
	}
}
