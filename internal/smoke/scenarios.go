package smoke

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/client"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/ptr"
)

func productsCRUD(ctx context.Context, c *client.Client, logger *slog.Logger) error {
	created, err := c.CreateProduct(ctx, client.ProductInput{
		Name:        "Air Monarch Premium",
		Description: "Luxury leather sneaker with gold accents. Premium craftsmanship meets timeless design.",
		Price:       299.99,
		Colors:      []string{"Black", "Gold", "Deep Red"},
		Images: []string{
			"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=800",
			"https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a?w=800",
		},
		Category: "Premium Sneakers",
		Featured: true,
		Stock:    50,
	})
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	logger.InfoContext(ctx, "product created", slog.String("product_id", created.ID.String()))

	all, err := c.ListProducts(ctx, client.ProductQuery{})
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if err := check(len(all) > 0, "no products found"); err != nil {
		return err
	}

	if err := expectColor(ctx, c, "Black", 1); err != nil {
		return err
	}

	got, err := c.GetProduct(ctx, created.ID)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if err := check(got.Name == "Air Monarch Premium", "unexpected product name %q", got.Name); err != nil {
		return err
	}

	updated, err := c.UpdateProduct(ctx, created.ID, model.ProductPatch{Price: ptr.New(349.99)})
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if err := check(updated.Price == 349.99, "price not updated: %v", updated.Price); err != nil {
		return err
	}
	if err := check(updated.Name == created.Name && updated.Stock == created.Stock,
		"partial update changed other fields"); err != nil {
		return err
	}

	if _, err := c.DeleteProduct(ctx, created.ID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	_, err = c.GetProduct(ctx, created.ID)
	if err := check(errors.Is(err, client.ErrNotFound), "product still readable after delete: %v", err); err != nil {
		return err
	}
	logger.InfoContext(ctx, "product confirmed deleted")

	return nil
}

func ordersCRUD(ctx context.Context, c *client.Client, logger *slog.Logger) error {
	product, err := c.CreateProduct(ctx, client.ProductInput{
		Name:        "Classic Black Sneaker",
		Description: "Timeless design with modern comfort",
		Price:       199.99,
		Colors:      []string{"Black", "Gold"},
		Images:      []string{"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=800"},
		Category:    "Classic",
		Stock:       100,
	})
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	defer cleanup(ctx, c, logger, product.ID)

	const email = "john@example.com"
	order, err := c.CreateOrder(ctx, client.OrderInput{
		Items: []model.OrderItem{{
			ProductID:   product.ID.String(),
			ProductName: product.Name,
			Quantity:    2,
			Price:       199.99,
			Color:       "Black",
		}},
		Total: 399.98,
		CustomerInfo: model.CustomerInfo{
			Name:       "John Doe",
			Email:      email,
			Phone:      "+1234567890",
			Address:    "123 Luxury Ave",
			City:       "New York",
			PostalCode: "10001",
		},
		PaymentMethod: model.PaymentMethodCOD,
	})
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	if err := check(order.PaymentMethod == model.PaymentMethodCOD, "payment method %q", order.PaymentMethod); err != nil {
		return err
	}
	if err := check(order.Status == model.OrderStatusPending, "initial status %q", order.Status); err != nil {
		return err
	}
	logger.InfoContext(ctx, "order created", slog.String("order_id", order.ID.String()))

	all, err := c.ListOrders(ctx, "")
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	if err := check(len(all) > 0, "no orders found"); err != nil {
		return err
	}

	byEmail, err := c.ListOrders(ctx, email)
	if err != nil {
		return fmt.Errorf("list orders by email: %w", err)
	}
	if err := check(len(byEmail) > 0, "email filter returned no results"); err != nil {
		return err
	}
	for _, o := range byEmail {
		if err := check(o.CustomerInfo.Email == email, "order %s has email %q", o.ID, o.CustomerInfo.Email); err != nil {
			return err
		}
	}

	got, err := c.GetOrder(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("get order: %w", err)
	}
	if err := check(got.Total == 399.98, "unexpected total %v", got.Total); err != nil {
		return err
	}

	updated, err := c.UpdateOrderStatus(ctx, order.ID, model.OrderStatusConfirmed)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return check(updated.Status == model.OrderStatusConfirmed, "status not updated: %q", updated.Status)
}

func colorFiltering(ctx context.Context, c *client.Client, logger *slog.Logger) error {
	inputs := []client.ProductInput{
		{
			Name:        "Black Gold Edition",
			Description: "Premium black with gold accents",
			Price:       299.99,
			Colors:      []string{"Black", "Gold"},
			Images:      []string{"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=800"},
			Category:    "Premium",
			Stock:       20,
		},
		{
			Name:        "Deep Red Luxury",
			Description: "Bold deep red statement piece",
			Price:       349.99,
			Colors:      []string{"Deep Red", "Black"},
			Images:      []string{"https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a?w=800"},
			Category:    "Premium",
			Stock:       15,
		},
		{
			Name:        "Pure Gold Collection",
			Description: "Exclusive gold luxury sneaker",
			Price:       399.99,
			Colors:      []string{"Gold"},
			Images:      []string{"https://images.unsplash.com/photo-1551107696-a4b0c5a0d9a2?w=800"},
			Category:    "Exclusive",
			Stock:       10,
		},
	}

	for _, in := range inputs {
		p, err := c.CreateProduct(ctx, in)
		if err != nil {
			return fmt.Errorf("create product %q: %w", in.Name, err)
		}
		defer cleanup(ctx, c, logger, p.ID)
	}

	for color, atLeast := range map[string]int{"Black": 2, "Gold": 2, "Deep Red": 1} {
		if err := expectColor(ctx, c, color, atLeast); err != nil {
			return err
		}
	}

	return nil
}

// expectColor lists products by color and checks that at least atLeast come back, each
// carrying exactly that color.
func expectColor(ctx context.Context, c *client.Client, color string, atLeast int) error {
	products, err := c.ListProducts(ctx, client.ProductQuery{Color: &color})
	if err != nil {
		return fmt.Errorf("list products by color %q: %w", color, err)
	}
	if err := check(len(products) >= atLeast, "color %q: expected at least %d products, got %d",
		color, atLeast, len(products)); err != nil {
		return err
	}
	for _, p := range products {
		if err := check(p.HasColor(color), "product %s returned for %q has colors %v", p.ID, color, p.Colors); err != nil {
			return err
		}
	}
	return nil
}

func cleanup(ctx context.Context, c *client.Client, logger *slog.Logger, id uuid.UUID) {
	if _, err := c.DeleteProduct(ctx, id); err != nil && !errors.Is(err, client.ErrNotFound) {
		logger.WarnContext(ctx, "cleanup failed", slog.String("product_id", id.String()), slog.Any("error", err))
	}
}
