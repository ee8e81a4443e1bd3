package dto

import "storefront/internal/models"

type CategoryResponse struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2"`
}

type ProductResponse struct {
	Id          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	PriceCents  int64             `json:"price_cents"`
	Currency    string            `json:"currency"`
	ImageUrl    string            `json:"image_url"`
	Category    *CategoryResponse `json:"category,omitempty"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
}

type CreateProductRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" binding:"required,gt=0"`
	ImageUrl    string `json:"image_url"`
	CategoryId  string `json:"category_id" binding:"required,uuid"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty"`
	ImageUrl    *string `json:"image_url,omitempty"`
	CategoryId  *string `json:"category_id,omitempty"`
}

func ToCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{Id: c.ID.String(), Name: c.Name}
}

func ToProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{
		Id:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Currency:    p.CurrencyCode,
		ImageUrl:    p.ImageURL,
	}
	if p.Category != nil {
		c := ToCategoryResponse(p.Category)
		resp.Category = &c
	}
	return resp
}
