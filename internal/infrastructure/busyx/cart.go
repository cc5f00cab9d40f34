package busyx

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopsync/backend/internal/domain/sync"
)

// Errors for cart and catalog operations
var (
	ErrEmptySession       = errors.New("busyx: empty session id returned")
	ErrProductInfoMissing = errors.New("busyx: no product info for product")
)

// NewSession requests a fresh cart session id (GetSid). SIDs are single-use
// per mirroring attempt.
func (a *Adapter) NewSession(ctx context.Context) (string, error) {
	data, err := a.doCall(ctx, "GetSid", "")
	if err != nil {
		return "", err
	}

	sid, _, err := returnElement(data)
	if err != nil {
		return "", err
	}
	if sid == "" {
		return "", ErrEmptySession
	}
	return sid, nil
}

// CartLines lists lines currently under the session (CartGetData). An empty
// cart is reported through the array type of the return element, not an
// empty item list.
func (a *Adapter) CartLines(ctx context.Context, sid string) ([]sync.CartLine, error) {
	inner := "<shopSID>" + xmlEscape(sid) + "</shopSID>"
	data, err := a.doCall(ctx, "CartGetData", inner)
	if err != nil {
		return nil, err
	}

	_, attrs, err := returnElement(data)
	if err != nil {
		return nil, err
	}
	for _, attr := range attrs {
		if attr.Name.Local == "arrayType" && strings.HasSuffix(attr.Value, "[0]") {
			return nil, nil
		}
	}

	items, err := collectItems[cartLineItem](data)
	if err != nil {
		return nil, err
	}

	lines := make([]sync.CartLine, 0, len(items))
	for i := range items {
		if line := items[i].toLine(); line.LineID != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// DeleteCartLine removes one stray line left by an earlier attempt
// (CartDeleteLine)
func (a *Adapter) DeleteCartLine(ctx context.Context, sid, lineID string) error {
	inner := "<ligneid>" + xmlEscape(lineID) + "</ligneid><shopSID>" + xmlEscape(sid) + "</shopSID>"
	_, err := a.doCall(ctx, "CartDeleteLine", inner)
	return err
}

// AddCartItem adds one resolved line to the session cart (CartAddItemPro)
func (a *Adapter) AddCartItem(ctx context.Context, sid string, item sync.CartItem) error {
	var b strings.Builder
	b.WriteString("<prd_id>")
	b.WriteString(xmlEscape(item.PrdID))
	b.WriteString("</prd_id><taille>")
	b.WriteString(xmlEscape(item.Size))
	b.WriteString("</taille><couleur>")
	b.WriteString(xmlEscape(item.Color))
	b.WriteString("</couleur><qte>")
	b.WriteString(strconv.Itoa(item.Quantity))
	b.WriteString("</qte><shopSID>")
	b.WriteString(xmlEscape(sid))
	b.WriteString("</shopSID>")

	_, err := a.doCall(ctx, "CartAddItemPro", b.String())
	return err
}

// SubmitOrder submits the assembled cart as an ERP order (AddCommande). The
// internal reference carries the storefront order name, which is how the
// mirror row is recognized on the next cycle.
func (a *Adapter) SubmitOrder(ctx context.Context, sid string, order sync.ErpOrderSubmission) error {
	geoCountry := order.GeoCountry
	if geoCountry == "" {
		geoCountry = "France"
	}

	var b strings.Builder
	b.WriteString("<cde_info>")
	b.WriteString("<commande_noclient>" + xmlEscape(a.config.APILog) + "</commande_noclient>")
	b.WriteString("<commande_lang>fr</commande_lang>")
	b.WriteString("<commande_enseigne></commande_enseigne>")
	b.WriteString("<commande_nom>" + xmlEscape(order.LastName) + "</commande_nom>")
	b.WriteString("<commande_prenom>" + xmlEscape(order.FirstName) + "</commande_prenom>")
	b.WriteString("<commande_email>" + xmlEscape(order.Email) + "</commande_email>")
	b.WriteString("<commande_rue>" + xmlEscape(order.Street) + "</commande_rue>")
	b.WriteString("<commande_cp>" + xmlEscape(order.PostalCode) + "</commande_cp>")
	b.WriteString("<commande_ville>" + xmlEscape(order.City) + "</commande_ville>")
	b.WriteString("<commande_pays>" + xmlEscape(order.Country) + "</commande_pays>")
	b.WriteString("<commande_tel>" + xmlEscape(order.Phone) + "</commande_tel>")
	b.WriteString("<commande_port>0</commande_port>")
	b.WriteString("<commande_totalttc>" + order.TotalTTC.String() + "</commande_totalttc>")
	b.WriteString("<commande_mode_transport>1</commande_mode_transport>")
	b.WriteString("<commande_geocountry>" + xmlEscape(geoCountry) + "</commande_geocountry>")
	b.WriteString("<commande_geozone>1</commande_geozone>")
	b.WriteString("<commande_user_ip>0.0.0.0</commande_user_ip>")
	b.WriteString("<commande_ref_interne>" + xmlEscape(order.InternalRef) + "</commande_ref_interne>")
	b.WriteString("<commande_SID>" + xmlEscape(sid) + "</commande_SID>")
	b.WriteString("</cde_info>")

	_, err := a.doCall(ctx, "AddCommande", b.String())
	return err
}
