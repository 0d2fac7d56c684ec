package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"rocketshoes/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type StockWriter interface {
	Set(ctx context.Context, stock domain.Stock) error
}

// CSVImporter reads catalog CSV files (id,title,price,image,stock) and
// inserts/updates products together with their stock level.
type CSVImporter struct {
	reader   *csv.Reader
	products ProductWriter
	stock    StockWriter
	logger   *zap.Logger
}

func NewCSVImporter(r io.Reader, products ProductWriter, stock StockWriter, logger *zap.Logger) *CSVImporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		products: products,
		stock:    stock,
		logger:   logger,
	}
}

type csvRow struct {
	ID       int64
	Title    string
	Price    float64
	Image    string
	Stock    int
	HasStock bool
}

var requiredHeaders = []string{"id", "title", "price"}

// Run parses CSV rows and upserts one product per row. Blank lines are skipped.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, h := range requiredHeaders {
		if _, ok := index[h]; !ok {
			return 0, fmt.Errorf("missing column %q", h)
		}
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		row, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if row == nil {
			continue
		}
		if err := i.save(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}

	i.logger.Info("catalog import finished", zap.Int("products", imported))
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	p := domain.Product{
		ID:    row.ID,
		Title: row.Title,
		Price: row.Price,
		Image: row.Image,
	}
	if _, err := i.products.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %d: %w", row.ID, err)
	}
	if !row.HasStock || i.stock == nil {
		return nil
	}
	if err := i.stock.Set(ctx, domain.Stock{ID: row.ID, Amount: row.Stock}); err != nil {
		return fmt.Errorf("set stock for product %d: %w", row.ID, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*csvRow, error) {
	idStr := pick(record, index, "id")
	title := pick(record, index, "title")
	priceStr := pick(record, index, "price")
	image := pick(record, index, "image")
	stockStr := pick(record, index, "stock")

	if idStr == "" && title == "" && priceStr == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid id %q", idStr)
	}
	if title == "" {
		return nil, fmt.Errorf("missing title for product %d", id)
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		return nil, fmt.Errorf("invalid price %q for product %d", priceStr, id)
	}

	row := &csvRow{ID: id, Title: title, Price: price, Image: image}
	if stockStr != "" {
		amount, err := strconv.Atoi(stockStr)
		if err != nil || amount < 0 {
			return nil, fmt.Errorf("invalid stock %q for product %d", stockStr, id)
		}
		row.Stock = amount
		row.HasStock = true
	}
	return row, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
