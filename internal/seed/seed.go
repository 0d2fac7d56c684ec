package seed

import (
	"context"
	"fmt"

	"rocketshoes/internal/domain"
)

const imageBase = "https://rocketseat-cdn.s3-sa-east-1.amazonaws.com/modulo-redux/"

type productSeed struct {
	ID    int64
	Title string
	Price float64
	Image string
	Stock int
}

var demoProducts = []productSeed{
	{ID: 1, Title: "Tênis de Caminhada Leve Confortável", Price: 179.9, Image: imageBase + "tenis1.jpg", Stock: 3},
	{ID: 2, Title: "Tênis VR Caminhada Confortável Detalhes Couro Masculino", Price: 139.9, Image: imageBase + "tenis2.jpg", Stock: 5},
	{ID: 3, Title: "Tênis Adidas Duramo Lite 2.0", Price: 219.9, Image: imageBase + "tenis3.jpg", Stock: 2},
	{ID: 5, Title: "Tênis VR Caminhada Confortável Detalhes Couro Masculino", Price: 139.9, Image: imageBase + "tenis2.jpg", Stock: 1},
	{ID: 6, Title: "Tênis Adidas Duramo Lite 2.0", Price: 219.9, Image: imageBase + "tenis3.jpg", Stock: 5},
	{ID: 4, Title: "Tênis de Caminhada Leve Confortável", Price: 179.9, Image: imageBase + "tenis1.jpg", Stock: 10},
}

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type StockWriter interface {
	Set(ctx context.Context, stock domain.Stock) error
}

// Apply inserts the demo shoe catalog for manual testing. Both writers upsert,
// so running it twice resets prices and stock to the demo values.
func Apply(ctx context.Context, products ProductWriter, stock StockWriter) error {
	for _, p := range demoProducts {
		if _, err := products.Upsert(ctx, domain.Product{ID: p.ID, Title: p.Title, Price: p.Price, Image: p.Image}); err != nil {
			return fmt.Errorf("upsert product %d: %w", p.ID, err)
		}
		if err := stock.Set(ctx, domain.Stock{ID: p.ID, Amount: p.Stock}); err != nil {
			return fmt.Errorf("set stock %d: %w", p.ID, err)
		}
	}
	return nil
}
