package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopsync/backend/internal/domain/staging"
)

// ---------------------------------------------------------------------------
// Storefront side
// ---------------------------------------------------------------------------

// ProductModel maps staged storefront products to the products table
type ProductModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	ShopifyID       string    `gorm:"size:64;not null;uniqueIndex"`
	Title           string    `gorm:"size:255;not null"`
	Handle          string    `gorm:"size:255"`
	Vendor          string    `gorm:"size:255"`
	ProductType     string    `gorm:"size:255"`
	DescriptionHTML string    `gorm:"type:text"`
	Tags            []string  `gorm:"type:jsonb;serializer:json"`
	PrdID           string    `gorm:"size:64;index"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName specifies the table name for ProductModel
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts ProductModel to domain Product
func (m *ProductModel) ToDomain() *staging.Product {
	return &staging.Product{
		ID:              m.ID,
		ShopifyID:       m.ShopifyID,
		Title:           m.Title,
		Handle:          m.Handle,
		Vendor:          m.Vendor,
		ProductType:     m.ProductType,
		DescriptionHTML: m.DescriptionHTML,
		Tags:            m.Tags,
		PrdID:           m.PrdID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ProductModelFromDomain converts domain Product to ProductModel
func ProductModelFromDomain(p *staging.Product) *ProductModel {
	return &ProductModel{
		ID:              p.ID,
		ShopifyID:       p.ShopifyID,
		Title:           p.Title,
		Handle:          p.Handle,
		Vendor:          p.Vendor,
		ProductType:     p.ProductType,
		DescriptionHTML: p.DescriptionHTML,
		Tags:            p.Tags,
		PrdID:           p.PrdID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// VariantModel maps staged storefront variants to the variants table
type VariantModel struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primary_key"`
	ShopifyID           string           `gorm:"size:64;not null;uniqueIndex"`
	ProductID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	Title               string           `gorm:"size:255"`
	Price               decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	SKU                 string           `gorm:"size:64;index"`
	InventoryQuantity   int              `gorm:"not null"`
	InventoryManagement string           `gorm:"size:32"`
	RequiresShipping    bool             `gorm:"not null"`
	Weight              decimal.Decimal  `gorm:"type:decimal(12,3)"`
	WeightUnit          string           `gorm:"size:8"`
	Taxable             bool             `gorm:"not null"`
	CompareAtPrice      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	InventoryItemID     string           `gorm:"size:64"`
	CreatedAt           time.Time        `gorm:"not null"`
	UpdatedAt           time.Time        `gorm:"not null"`
}

// TableName specifies the table name for VariantModel
func (VariantModel) TableName() string {
	return "variants"
}

// ToDomain converts VariantModel to domain Variant
func (m *VariantModel) ToDomain() *staging.Variant {
	return &staging.Variant{
		ID:                  m.ID,
		ShopifyID:           m.ShopifyID,
		ProductID:           m.ProductID,
		Title:               m.Title,
		Price:               m.Price,
		SKU:                 m.SKU,
		InventoryQuantity:   m.InventoryQuantity,
		InventoryManagement: m.InventoryManagement,
		RequiresShipping:    m.RequiresShipping,
		Weight:              m.Weight,
		WeightUnit:          m.WeightUnit,
		Taxable:             m.Taxable,
		CompareAtPrice:      m.CompareAtPrice,
		InventoryItemID:     m.InventoryItemID,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// VariantModelFromDomain converts domain Variant to VariantModel
func VariantModelFromDomain(v *staging.Variant) *VariantModel {
	return &VariantModel{
		ID:                  v.ID,
		ShopifyID:           v.ShopifyID,
		ProductID:           v.ProductID,
		Title:               v.Title,
		Price:               v.Price,
		SKU:                 v.SKU,
		InventoryQuantity:   v.InventoryQuantity,
		InventoryManagement: v.InventoryManagement,
		RequiresShipping:    v.RequiresShipping,
		Weight:              v.Weight,
		WeightUnit:          v.WeightUnit,
		Taxable:             v.Taxable,
		CompareAtPrice:      v.CompareAtPrice,
		InventoryItemID:     v.InventoryItemID,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}

// MetafieldModel maps staged metafields to the metafields table. A row is
// owned by either a product or an order, never both. Uniqueness per owner
// is enforced by partial indexes in the migrations.
type MetafieldModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	ProductID *uuid.UUID `gorm:"type:uuid;index"`
	OrderID   *uuid.UUID `gorm:"type:uuid;index"`
	Namespace string     `gorm:"size:64;not null"`
	Key       string     `gorm:"size:64;not null"`
	Value     string     `gorm:"type:text"`
	Type      string     `gorm:"size:64"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

// TableName specifies the table name for MetafieldModel
func (MetafieldModel) TableName() string {
	return "metafields"
}

// ToDomain converts MetafieldModel to domain Metafield
func (m *MetafieldModel) ToDomain() *staging.Metafield {
	return &staging.Metafield{
		ID:        m.ID,
		ProductID: m.ProductID,
		OrderID:   m.OrderID,
		Namespace: m.Namespace,
		Key:       m.Key,
		Value:     m.Value,
		Type:      m.Type,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// MetafieldModelFromDomain converts domain Metafield to MetafieldModel
func MetafieldModelFromDomain(f *staging.Metafield) *MetafieldModel {
	return &MetafieldModel{
		ID:        f.ID,
		ProductID: f.ProductID,
		OrderID:   f.OrderID,
		Namespace: f.Namespace,
		Key:       f.Key,
		Value:     f.Value,
		Type:      f.Type,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// ERP side
// ---------------------------------------------------------------------------

// StockProductModel maps staged ERP catalog products to the product_info table
type StockProductModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	PrdID            string          `gorm:"size:64;not null;uniqueIndex"`
	Label            string          `gorm:"size:255"`
	SmallDescription string          `gorm:"type:text"`
	LargeDescription string          `gorm:"type:text"`
	PriceEUR         decimal.Decimal `gorm:"type:decimal(12,2)"`
	PricePromo       decimal.Decimal `gorm:"type:decimal(12,2)"`
	PricePro         decimal.Decimal `gorm:"type:decimal(12,2)"`
	CanalSoft        string          `gorm:"size:32"`
	CanalFemme       string          `gorm:"size:32"`
	Weight           decimal.Decimal `gorm:"type:decimal(12,3)"`
	Category         string          `gorm:"size:255"`
	Barcode          string          `gorm:"size:64"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName specifies the table name for StockProductModel
func (StockProductModel) TableName() string {
	return "product_info"
}

// ToDomain converts StockProductModel to domain StockProduct
func (m *StockProductModel) ToDomain() *staging.StockProduct {
	return &staging.StockProduct{
		ID:               m.ID,
		PrdID:            m.PrdID,
		Label:            m.Label,
		SmallDescription: m.SmallDescription,
		LargeDescription: m.LargeDescription,
		PriceEUR:         m.PriceEUR,
		PricePromo:       m.PricePromo,
		PricePro:         m.PricePro,
		CanalSoft:        m.CanalSoft,
		CanalFemme:       m.CanalFemme,
		Weight:           m.Weight,
		Category:         m.Category,
		Barcode:          m.Barcode,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// StockProductModelFromDomain converts domain StockProduct to StockProductModel
func StockProductModelFromDomain(p *staging.StockProduct) *StockProductModel {
	return &StockProductModel{
		ID:               p.ID,
		PrdID:            p.PrdID,
		Label:            p.Label,
		SmallDescription: p.SmallDescription,
		LargeDescription: p.LargeDescription,
		PriceEUR:         p.PriceEUR,
		PricePromo:       p.PricePromo,
		PricePro:         p.PricePro,
		CanalSoft:        p.CanalSoft,
		CanalFemme:       p.CanalFemme,
		Weight:           p.Weight,
		Category:         p.Category,
		Barcode:          p.Barcode,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// StockVariantModel maps staged ERP stock records to the stock_variants table
type StockVariantModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	PrdID     string    `gorm:"size:64;not null;index"`
	EAN       string    `gorm:"size:64;not null;uniqueIndex"`
	Quantity  int       `gorm:"not null"`
	Active    bool      `gorm:"not null"`
	Tracked   bool      `gorm:"not null"`
	Size      string    `gorm:"size:64"`
	Color     string    `gorm:"size:64"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for StockVariantModel
func (StockVariantModel) TableName() string {
	return "stock_variants"
}

// ToDomain converts StockVariantModel to domain StockVariant
func (m *StockVariantModel) ToDomain() *staging.StockVariant {
	return &staging.StockVariant{
		ID:        m.ID,
		PrdID:     m.PrdID,
		EAN:       m.EAN,
		Quantity:  m.Quantity,
		Active:    m.Active,
		Tracked:   m.Tracked,
		Size:      m.Size,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// StockVariantModelFromDomain converts domain StockVariant to StockVariantModel
func StockVariantModelFromDomain(v *staging.StockVariant) *StockVariantModel {
	return &StockVariantModel{
		ID:        v.ID,
		PrdID:     v.PrdID,
		EAN:       v.EAN,
		Quantity:  v.Quantity,
		Active:    v.Active,
		Tracked:   v.Tracked,
		Size:      v.Size,
		Color:     v.Color,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// ProductOptionModel maps derived option axes to the product_options table
type ProductOptionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	PrdID     string    `gorm:"size:64;not null;index:idx_product_options_prd_name,unique"`
	Name      string    `gorm:"size:64;not null;index:idx_product_options_prd_name,unique"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for ProductOptionModel
func (ProductOptionModel) TableName() string {
	return "product_options"
}

// ToDomain converts ProductOptionModel to domain ProductOption
func (m *ProductOptionModel) ToDomain() *staging.ProductOption {
	return &staging.ProductOption{
		ID:        m.ID,
		PrdID:     m.PrdID,
		Name:      m.Name,
		Position:  m.Position,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ProductOptionModelFromDomain converts domain ProductOption to ProductOptionModel
func ProductOptionModelFromDomain(o *staging.ProductOption) *ProductOptionModel {
	return &ProductOptionModel{
		ID:        o.ID,
		PrdID:     o.PrdID,
		Name:      o.Name,
		Position:  o.Position,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// OptionValueModel maps option axis values to the option_values table
type OptionValueModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	OptionID  uuid.UUID `gorm:"type:uuid;not null;index:idx_option_values_option_label,unique"`
	Label     string    `gorm:"size:128;not null;index:idx_option_values_option_label,unique"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for OptionValueModel
func (OptionValueModel) TableName() string {
	return "option_values"
}

// ToDomain converts OptionValueModel to domain OptionValue
func (m *OptionValueModel) ToDomain() *staging.OptionValue {
	return &staging.OptionValue{
		ID:        m.ID,
		OptionID:  m.OptionID,
		Label:     m.Label,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// OptionValueModelFromDomain converts domain OptionValue to OptionValueModel
func OptionValueModelFromDomain(v *staging.OptionValue) *OptionValueModel {
	return &OptionValueModel{
		ID:        v.ID,
		OptionID:  v.OptionID,
		Label:     v.Label,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

// OrderModel maps staged storefront orders to the orders table
type OrderModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	ShopifyID         string          `gorm:"size:64;not null;uniqueIndex"`
	Name              string          `gorm:"size:64;not null;index"`
	Email             string          `gorm:"size:255"`
	TotalPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CurrencyCode      string          `gorm:"size:8"`
	FinancialStatus   string          `gorm:"size:32"`
	FulfillmentStatus string          `gorm:"size:32"`
	PlacedAt          time.Time
	CustomerFirstName string    `gorm:"size:128"`
	CustomerLastName  string    `gorm:"size:128"`
	CustomerPhone     string    `gorm:"size:64"`
	ShippingAddress1  string    `gorm:"size:255"`
	ShippingAddress2  string    `gorm:"size:255"`
	ShippingCity      string    `gorm:"size:128"`
	ShippingZip       string    `gorm:"size:32"`
	ShippingCountry   string    `gorm:"size:64"`
	BillingAddress1   string    `gorm:"size:255"`
	BillingAddress2   string    `gorm:"size:255"`
	BillingCity       string    `gorm:"size:128"`
	BillingZip        string    `gorm:"size:32"`
	BillingCountry    string    `gorm:"size:64"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName specifies the table name for OrderModel
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts OrderModel to domain Order (without line items)
func (m *OrderModel) ToDomain() *staging.Order {
	return &staging.Order{
		ID:                m.ID,
		ShopifyID:         m.ShopifyID,
		Name:              m.Name,
		Email:             m.Email,
		TotalPrice:        m.TotalPrice,
		CurrencyCode:      m.CurrencyCode,
		FinancialStatus:   m.FinancialStatus,
		FulfillmentStatus: m.FulfillmentStatus,
		PlacedAt:          m.PlacedAt,
		CustomerFirstName: m.CustomerFirstName,
		CustomerLastName:  m.CustomerLastName,
		CustomerPhone:     m.CustomerPhone,
		ShippingAddress1:  m.ShippingAddress1,
		ShippingAddress2:  m.ShippingAddress2,
		ShippingCity:      m.ShippingCity,
		ShippingZip:       m.ShippingZip,
		ShippingCountry:   m.ShippingCountry,
		BillingAddress1:   m.BillingAddress1,
		BillingAddress2:   m.BillingAddress2,
		BillingCity:       m.BillingCity,
		BillingZip:        m.BillingZip,
		BillingCountry:    m.BillingCountry,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// OrderModelFromDomain converts domain Order to OrderModel
func OrderModelFromDomain(o *staging.Order) *OrderModel {
	return &OrderModel{
		ID:                o.ID,
		ShopifyID:         o.ShopifyID,
		Name:              o.Name,
		Email:             o.Email,
		TotalPrice:        o.TotalPrice,
		CurrencyCode:      o.CurrencyCode,
		FinancialStatus:   o.FinancialStatus,
		FulfillmentStatus: o.FulfillmentStatus,
		PlacedAt:          o.PlacedAt,
		CustomerFirstName: o.CustomerFirstName,
		CustomerLastName:  o.CustomerLastName,
		CustomerPhone:     o.CustomerPhone,
		ShippingAddress1:  o.ShippingAddress1,
		ShippingAddress2:  o.ShippingAddress2,
		ShippingCity:      o.ShippingCity,
		ShippingZip:       o.ShippingZip,
		ShippingCountry:   o.ShippingCountry,
		BillingAddress1:   o.BillingAddress1,
		BillingAddress2:   o.BillingAddress2,
		BillingCity:       o.BillingCity,
		BillingZip:        o.BillingZip,
		BillingCountry:    o.BillingCountry,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

// LineItemModel maps staged order lines to the line_items table
type LineItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ShopifyID string          `gorm:"size:64;not null;uniqueIndex"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title     string          `gorm:"size:255"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2)"`
	SKU       string          `gorm:"size:64;index"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName specifies the table name for LineItemModel
func (LineItemModel) TableName() string {
	return "line_items"
}

// ToDomain converts LineItemModel to domain LineItem
func (m *LineItemModel) ToDomain() *staging.LineItem {
	return &staging.LineItem{
		ID:        m.ID,
		ShopifyID: m.ShopifyID,
		OrderID:   m.OrderID,
		Title:     m.Title,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		SKU:       m.SKU,
		CreatedAt: m.CreatedAt,
	}
}

// LineItemModelFromDomain converts domain LineItem to LineItemModel
func LineItemModelFromDomain(li *staging.LineItem) *LineItemModel {
	return &LineItemModel{
		ID:        li.ID,
		ShopifyID: li.ShopifyID,
		OrderID:   li.OrderID,
		Title:     li.Title,
		Quantity:  li.Quantity,
		UnitPrice: li.UnitPrice,
		SKU:       li.SKU,
		CreatedAt: li.CreatedAt,
	}
}

// ErpOrderModel maps staged ERP orders to the order_soap table
type ErpOrderModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	CdeID         string          `gorm:"size:64;not null;uniqueIndex"`
	PlacedAt      string          `gorm:"size:64"`
	Number        string          `gorm:"size:64"`
	ClientID      string          `gorm:"size:64"`
	LastName      string          `gorm:"size:128"`
	FirstName     string          `gorm:"size:128"`
	Email         string          `gorm:"size:255"`
	Address       string          `gorm:"size:255"`
	PostalCode    string          `gorm:"size:32"`
	City          string          `gorm:"size:128"`
	Country       string          `gorm:"size:64"`
	Phone         string          `gorm:"size:64"`
	Fax           string          `gorm:"size:64"`
	Message       string          `gorm:"type:text"`
	DeliveryLast  string          `gorm:"size:128"`
	DeliveryFirst string          `gorm:"size:128"`
	DeliveryRue   string          `gorm:"size:255"`
	DeliveryRue2  string          `gorm:"size:255"`
	DeliveryRue3  string          `gorm:"size:255"`
	DeliveryZip   string          `gorm:"size:32"`
	TotalHT       decimal.Decimal `gorm:"type:decimal(12,2)"`
	TotalTTC      decimal.Decimal `gorm:"type:decimal(12,2)"`
	PaymentMode   int
	Status        int
	PaidAt        string    `gorm:"size:64"`
	TransportMode int
	GeoCountry    string    `gorm:"size:64"`
	InternalRef   string    `gorm:"size:64;index"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for ErpOrderModel
func (ErpOrderModel) TableName() string {
	return "order_soap"
}

// ToDomain converts ErpOrderModel to domain ErpOrder
func (m *ErpOrderModel) ToDomain() *staging.ErpOrder {
	return &staging.ErpOrder{
		ID:            m.ID,
		CdeID:         m.CdeID,
		PlacedAt:      m.PlacedAt,
		Number:        m.Number,
		ClientID:      m.ClientID,
		LastName:      m.LastName,
		FirstName:     m.FirstName,
		Email:         m.Email,
		Address:       m.Address,
		PostalCode:    m.PostalCode,
		City:          m.City,
		Country:       m.Country,
		Phone:         m.Phone,
		Fax:           m.Fax,
		Message:       m.Message,
		DeliveryLast:  m.DeliveryLast,
		DeliveryFirst: m.DeliveryFirst,
		DeliveryRue:   m.DeliveryRue,
		DeliveryRue2:  m.DeliveryRue2,
		DeliveryRue3:  m.DeliveryRue3,
		DeliveryZip:   m.DeliveryZip,
		TotalHT:       m.TotalHT,
		TotalTTC:      m.TotalTTC,
		PaymentMode:   m.PaymentMode,
		Status:        m.Status,
		PaidAt:        m.PaidAt,
		TransportMode: m.TransportMode,
		GeoCountry:    m.GeoCountry,
		InternalRef:   m.InternalRef,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ErpOrderModelFromDomain converts domain ErpOrder to ErpOrderModel
func ErpOrderModelFromDomain(o *staging.ErpOrder) *ErpOrderModel {
	return &ErpOrderModel{
		ID:            o.ID,
		CdeID:         o.CdeID,
		PlacedAt:      o.PlacedAt,
		Number:        o.Number,
		ClientID:      o.ClientID,
		LastName:      o.LastName,
		FirstName:     o.FirstName,
		Email:         o.Email,
		Address:       o.Address,
		PostalCode:    o.PostalCode,
		City:          o.City,
		Country:       o.Country,
		Phone:         o.Phone,
		Fax:           o.Fax,
		Message:       o.Message,
		DeliveryLast:  o.DeliveryLast,
		DeliveryFirst: o.DeliveryFirst,
		DeliveryRue:   o.DeliveryRue,
		DeliveryRue2:  o.DeliveryRue2,
		DeliveryRue3:  o.DeliveryRue3,
		DeliveryZip:   o.DeliveryZip,
		TotalHT:       o.TotalHT,
		TotalTTC:      o.TotalTTC,
		PaymentMode:   o.PaymentMode,
		Status:        o.Status,
		PaidAt:        o.PaidAt,
		TransportMode: o.TransportMode,
		GeoCountry:    o.GeoCountry,
		InternalRef:   o.InternalRef,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
