package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartSummary struct {
	Items      []models.CartItem
	TotalCents int64
}

type CartService struct {
	cart     repository.CartRepo
	products repository.ProductRepo
	log      *zap.Logger
}

func NewCartService(cart repository.CartRepo, products repository.ProductRepo, log *zap.Logger) *CartService {
	return &CartService{cart: cart, products: products, log: log}
}

func (s *CartService) Get(ctx context.Context) (CartSummary, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return CartSummary{}, err
	}

	items, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return CartSummary{}, err
	}
	total, err := s.cart.SumByUser(ctx, userID)
	if err != nil {
		return CartSummary{}, err
	}
	return CartSummary{Items: items, TotalCents: total}, nil
}

// SetItem выставляет количество товара в корзине: quantity=0 удаляет строку,
// цена всегда перечитывается из каталога, клиентская не принимается
func (s *CartService) SetItem(ctx context.Context, productID uuid.UUID, quantity uint32) (*models.CartItem, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if quantity == 0 {
		if err := s.cart.DeleteByUserProduct(ctx, userID, productID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	itemTotal := int64(quantity) * product.PriceCents

	existing, err := s.cart.GetByUserProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.cart.UpdateQuantity(ctx, existing.ID, quantity, itemTotal); err != nil {
			return nil, err
		}
		return s.cart.GetByUserProduct(ctx, userID, productID)
	}

	item := &models.CartItem{
		UserID:         userID,
		ProductID:      productID,
		Quantity:       quantity,
		UnitPriceCents: product.PriceCents,
		ItemTotalCents: itemTotal,
		CurrencyCode:   product.CurrencyCode,
	}
	if err := s.cart.Create(ctx, item); err != nil {
		// гонка двух одинаковых добавлений: перечитываем и обновляем
		if repository.IsUniqueViolation(err) {
			winner, lookupErr := s.cart.GetByUserProduct(ctx, userID, productID)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if winner != nil {
				if err := s.cart.UpdateQuantity(ctx, winner.ID, quantity, itemTotal); err != nil {
					return nil, err
				}
				return s.cart.GetByUserProduct(ctx, userID, productID)
			}
		}
		return nil, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, productID uuid.UUID) error {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return err
	}
	existing, err := s.cart.GetByUserProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}
	return s.cart.DeleteByUserProduct(ctx, userID, productID)
}

func (s *CartService) Clear(ctx context.Context) (int64, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return 0, err
	}
	deleted, err := s.cart.DeleteAllForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.log.Info("cart cleared", zap.String("user_id", userID.String()), zap.Int64("deleted", deleted))
	return deleted, nil
}
