package dto

import "storefront/internal/models"

type CartItemResponse struct {
	ProductId      string           `json:"product_id"`
	Quantity       uint32           `json:"quantity"`
	UnitPriceCents int64            `json:"unit_price_cents"`
	ItemTotalCents int64            `json:"item_total_cents"`
	Product        *ProductResponse `json:"product,omitempty"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalCents int64              `json:"total_cents"`
}

type SetCartItemRequest struct {
	ProductId string `json:"product_id" binding:"required,uuid"`
	Quantity  uint32 `json:"quantity"`
}

type ClearCartResponse struct {
	Deleted int64 `json:"deleted"`
}

func ToCartItemResponse(it *models.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ProductId:      it.ProductID.String(),
		Quantity:       it.Quantity,
		UnitPriceCents: it.UnitPriceCents,
		ItemTotalCents: it.ItemTotalCents,
	}
	if it.Product != nil {
		p := ToProductResponse(it.Product)
		resp.Product = &p
	}
	return resp
}

func ToCartResponse(items []models.CartItem, total int64) CartResponse {
	resp := CartResponse{Items: make([]CartItemResponse, 0, len(items)), TotalCents: total}
	for i := range items {
		resp.Items = append(resp.Items, ToCartItemResponse(&items[i]))
	}
	return resp
}
