package dto

import (
	"time"

	"storefront/internal/models"
)

type ShippingAddress struct {
	FullName     string `json:"fullName" binding:"required"`
	AddressLine1 string `json:"addressLine1" binding:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Phone        string `json:"phone"`
}

type OrderItemRequest struct {
	ProductId  string `json:"product_id" binding:"required,uuid"`
	Quantity   uint32 `json:"quantity" binding:"required,gt=0"`
	PriceCents int64  `json:"price_cents" binding:"required,gte=0"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,dive"`
	ShippingAddress ShippingAddress    `json:"shipping_address" binding:"required"`
	PaymentIntentId *string            `json:"payment_intent_id,omitempty"`
	PaymentStatus   *string            `json:"payment_status,omitempty"`
}

type OrderItemResponse struct {
	ProductId      string `json:"product_id"`
	ProductName    string `json:"product_name,omitempty"`
	Quantity       uint32 `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	ItemTotalCents int64  `json:"item_total_cents"`
}

type OrderResponse struct {
	Id              string              `json:"id"`
	Status          string              `json:"status"`
	PaymentIntentId *string             `json:"payment_intent_id,omitempty"`
	PaymentStatus   *string             `json:"payment_status,omitempty"`
	TotalCents      int64               `json:"total_cents"`
	Currency        string              `json:"currency"`
	ShippingAddress ShippingAddress     `json:"shipping_address"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateIntentRequest struct {
	Currency string `json:"currency"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

func ToOrderResponse(o *models.Order) OrderResponse {
	resp := OrderResponse{
		Id:              o.ID.String(),
		Status:          string(o.Status),
		PaymentIntentId: o.PaymentIntentID,
		PaymentStatus:   o.PaymentStatus,
		TotalCents:      o.TotalCents,
		Currency:        o.CurrencyCode,
		ShippingAddress: ShippingAddress{
			FullName:     o.ShippingAddress.FullName,
			AddressLine1: o.ShippingAddress.AddressLine1,
			AddressLine2: o.ShippingAddress.AddressLine2,
			City:         o.ShippingAddress.City,
			State:        o.ShippingAddress.State,
			PostalCode:   o.ShippingAddress.PostalCode,
			Phone:        o.ShippingAddress.Phone,
		},
		Items:     make([]OrderItemResponse, 0, len(o.Items)),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	for _, it := range o.Items {
		item := OrderItemResponse{
			ProductId:      it.ProductID.String(),
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			ItemTotalCents: it.ItemTotalCents,
		}
		if it.Product != nil {
			item.ProductName = it.Product.Name
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

func ToOrderListResponse(orders []*models.Order, total int64) OrderListResponse {
	resp := OrderListResponse{Orders: make([]OrderResponse, 0, len(orders)), Total: total}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, ToOrderResponse(o))
	}
	return resp
}
