package busyx

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/sync"
)

// SOAP item shapes. Every field arrives as text; converters normalize the
// types at the boundary so nothing downstream re-parses.

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func decimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// stockItem is one row of the GetAllProductStock listing
type stockItem struct {
	PrdID   string `xml:"prd_id"`
	EAN     string `xml:"stock_ean13"`
	Qty     string `xml:"stock_qt"`
	Active  string `xml:"stock_actif"`
	Tracked string `xml:"stock_suivi"`
	Size    string `xml:"stock_taille"`
	Color   string `xml:"stock_couleur"`
}

func (i *stockItem) toRecord() sync.StockRecord {
	return sync.StockRecord{
		PrdID:    strings.TrimSpace(i.PrdID),
		EAN:      strings.TrimSpace(i.EAN),
		Quantity: atoiOrZero(i.Qty),
		Active:   strings.TrimSpace(i.Active) == "1",
		Tracked:  strings.TrimSpace(i.Tracked) == "1",
		Size:     strings.TrimSpace(i.Size),
		Color:    strings.TrimSpace(i.Color),
	}
}

// productInfoItem is the GetProductInfo payload for one product
type productInfoItem struct {
	ID               string `xml:"id_produit"`
	Barcode          string `xml:"prd_codebarre"`
	Label            string `xml:"prd_libel"`
	SmallDescription string `xml:"prd_small_description"`
	LargeDescription string `xml:"prd_large_description"`
	PriceEUR         string `xml:"prd_px_euro"`
	PricePromo       string `xml:"prd_px_promo"`
	PricePro         string `xml:"prd_px_pro"`
	CanalSoft        string `xml:"prd_canal_soft"`
	CanalFemme       string `xml:"prd_canal_femme"`
	Weight           string `xml:"prd_poids"`
	Category         string `xml:"prd_categorie"`
}

func (i *productInfoItem) toRecord(prdID string) *sync.ProductInfoRecord {
	return &sync.ProductInfoRecord{
		PrdID:            prdID,
		Barcode:          strings.TrimSpace(i.Barcode),
		Label:            strings.TrimSpace(i.Label),
		SmallDescription: i.SmallDescription,
		LargeDescription: i.LargeDescription,
		PriceEUR:         decimalOrZero(i.PriceEUR),
		PricePromo:       decimalOrZero(i.PricePromo),
		PricePro:         decimalOrZero(i.PricePro),
		CanalSoft:        strings.TrimSpace(i.CanalSoft),
		CanalFemme:       strings.TrimSpace(i.CanalFemme),
		Weight:           decimalOrZero(i.Weight),
		Category:         strings.TrimSpace(i.Category),
	}
}

// commandItem is one row of the GetTbCommandes listing
type commandItem struct {
	CdeID         string `xml:"cde_id"`
	PlacedAt      string `xml:"cde_dt"`
	Number        string `xml:"cde_num"`
	ClientID      string `xml:"cde_client_id"`
	LastName      string `xml:"cde_nom"`
	FirstName     string `xml:"cde_prenom"`
	Email         string `xml:"cde_email"`
	Address       string `xml:"cde_adresse"`
	PostalCode    string `xml:"cde_codepostal"`
	City          string `xml:"cde_ville"`
	Country       string `xml:"cde_pays"`
	Phone         string `xml:"cde_tel"`
	Fax           string `xml:"cde_fax"`
	Message       string `xml:"cde_message"`
	DeliveryLast  string `xml:"cde_livraison_nom"`
	DeliveryFirst string `xml:"cde_livraison_prenom"`
	DeliveryRue   string `xml:"cde_livraison_rue"`
	DeliveryRue2  string `xml:"cde_livraison_rue2"`
	DeliveryRue3  string `xml:"cde_livraison_rue3"`
	DeliveryZip   string `xml:"cde_livraison_codepostal"`
	TotalHT       string `xml:"cde_total_ht"`
	TotalTTC      string `xml:"cde_total_ttc"`
	PaymentMode   string `xml:"cde_paiement"`
	Status        string `xml:"cde_statut"`
	PaidAt        string `xml:"cde_dt_paiement"`
	TransportMode string `xml:"cde_mode_transport"`
	GeoCountry    string `xml:"cde_country"`
	InternalRef   string `xml:"cde_ref_interne"`
}

func (i *commandItem) toRecord() sync.ErpOrderRecord {
	return sync.ErpOrderRecord{
		CdeID:         strings.TrimSpace(i.CdeID),
		PlacedAt:      strings.TrimSpace(i.PlacedAt),
		Number:        strings.TrimSpace(i.Number),
		ClientID:      strings.TrimSpace(i.ClientID),
		LastName:      i.LastName,
		FirstName:     i.FirstName,
		Email:         strings.TrimSpace(i.Email),
		Address:       i.Address,
		PostalCode:    strings.TrimSpace(i.PostalCode),
		City:          i.City,
		Country:       i.Country,
		Phone:         strings.TrimSpace(i.Phone),
		Fax:           strings.TrimSpace(i.Fax),
		Message:       i.Message,
		DeliveryLast:  i.DeliveryLast,
		DeliveryFirst: i.DeliveryFirst,
		DeliveryRue:   i.DeliveryRue,
		DeliveryRue2:  i.DeliveryRue2,
		DeliveryRue3:  i.DeliveryRue3,
		DeliveryZip:   strings.TrimSpace(i.DeliveryZip),
		TotalHT:       decimalOrZero(i.TotalHT),
		TotalTTC:      decimalOrZero(i.TotalTTC),
		PaymentMode:   atoiOrZero(i.PaymentMode),
		Status:        atoiOrZero(i.Status),
		PaidAt:        strings.TrimSpace(i.PaidAt),
		TransportMode: atoiOrZero(i.TransportMode),
		GeoCountry:    strings.TrimSpace(i.GeoCountry),
		InternalRef:   strings.TrimSpace(i.InternalRef),
	}
}

// cartLineItem is one line of the CartGetData listing
type cartLineItem struct {
	ID    string `xml:"id"`
	PrdID string `xml:"prd_id"`
	Qty   string `xml:"qte"`
}

func (i *cartLineItem) toLine() sync.CartLine {
	return sync.CartLine{
		LineID:   strings.TrimSpace(i.ID),
		PrdID:    strings.TrimSpace(i.PrdID),
		Quantity: atoiOrZero(i.Qty),
	}
}
