package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "ROLE_CUSTOMER"
	RoleAdmin    Role = "ROLE_ADMIN"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string    `gorm:"not null"`
	Email           string    `gorm:"not null;uniqueIndex"`
	Password        string    `gorm:"not null"` // bcrypt hash
	Role            Role      `gorm:"type:text;not null;default:'ROLE_CUSTOMER';index"`
	IsEmailVerified bool      `gorm:"not null;default:false;index"`
	CreatedAt       time.Time `gorm:"not null;default:now()"`
	UpdatedAt       time.Time `gorm:"not null;default:now()"`
}

func (User) TableName() string { return "users" }

type EmailVerification struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Email     string    `gorm:"not null"`
	CodeHash  string    `gorm:"not null;index"` // хранится ХЭШ кода, не сам код
	ExpiresAt time.Time `gorm:"not null;index"`
	Consumed  bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (EmailVerification) TableName() string { return "email_verifications" }

type PasswordResetToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Email     string    `gorm:"not null"`
	CodeHash  string    `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	Consumed  bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (PasswordResetToken) TableName() string { return "password_reset_tokens" }

type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	PriceCents  int64     `gorm:"not null"` // цена в пайсах (минорные единицы INR)
	CurrencyCode string   `gorm:"type:char(3);not null;default:'INR'"`
	ImageURL    string    `gorm:"type:text"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Category    *Category `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time `gorm:"not null;default:now()"`
	UpdatedAt   time.Time `gorm:"not null;default:now()"`
}

func (Product) TableName() string { return "products" }

// CartItem — строка открытой корзины (user, product); снапшот цены
// пересчитывается при каждом изменении количества, версионирования нет
type CartItem struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_cart_items_user_product"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_cart_items_user_product"`
	Quantity       uint32    `gorm:"type:int;not null"`
	UnitPriceCents int64     `gorm:"not null"`
	ItemTotalCents int64     `gorm:"not null"`
	CurrencyCode   string    `gorm:"type:char(3);not null;default:'INR'"`
	Product        *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt      time.Time `gorm:"not null;default:now()"`
	UpdatedAt      time.Time `gorm:"not null;default:now()"`
}

func (CartItem) TableName() string { return "cart_items" }

// Статус заказа — строковый тип, движется только вперёд по машине состояний
type OrderStatus string

const (
	OrderStatusReceived  OrderStatus = "RECEIVED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusFailed    OrderStatus = "FAILED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// Статус оплаты — отдельная ось, зеркалит состояние платёжного шлюза
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

// ShippingAddress — структурированный снапшот адреса на момент создания заказа
type ShippingAddress struct {
	FullName     string `gorm:"column:full_name;type:text" json:"fullName"`
	AddressLine1 string `gorm:"column:address_line1;type:text" json:"addressLine1"`
	AddressLine2 string `gorm:"column:address_line2;type:text" json:"addressLine2,omitempty"`
	City         string `gorm:"column:city;type:text" json:"city"`
	State        string `gorm:"column:state;type:text" json:"state"`
	PostalCode   string `gorm:"column:postal_code;type:text" json:"postalCode"`
	Phone        string `gorm:"column:phone;type:text" json:"phone"`
}

type Order struct {
	ID     uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status OrderStatus `gorm:"type:text;not null;default:'RECEIVED';index"`

	// PaymentIntentID — ключ идемпотентности: не более одного заказа на интент.
	// Уникальность гарантирует частичный индекс в миграции, не application-логика.
	PaymentIntentID *string `gorm:"type:text"`
	PaymentStatus   *string `gorm:"type:text"`

	TotalCents   int64  `gorm:"not null;default:0"` // сумма позиций на момент создания, далее не пересчитывается
	CurrencyCode string `gorm:"type:char(3);not null;default:'INR'"`

	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_order_items_order_product"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_order_items_order_product"`
	Quantity       uint32    `gorm:"type:int;not null"`
	UnitPriceCents int64     `gorm:"not null"`
	ItemTotalCents int64     `gorm:"not null"`
	CurrencyCode   string    `gorm:"type:char(3);not null;default:'INR'"`
	Product        *Product  `gorm:"foreignKey:ProductID"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (OrderItem) TableName() string { return "order_items" }
