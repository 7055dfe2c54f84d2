// Package orderjson maps raw upstream order payloads onto the canonical
// order.Record. The upstream sends at least two distinct shapes: a detailed
// one (nested orderItems / customerAddress) and a flat summary one. The shape
// is resolved once, here, by key presence; nothing downstream re-checks it.
package orderjson

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"orderdesk/internal/domain/order"
)

// Normalize builds a canonical record from one raw order object. Every field
// has a default, so it never fails regardless of what is missing or null.
func Normalize(raw map[string]interface{}) order.Record {
	if raw == nil {
		raw = map[string]interface{}{}
	}
	if _, detailed := raw["orderItems"]; detailed {
		return normalizeDetailed(raw)
	}
	if _, detailed := raw["customerAddress"]; detailed {
		return normalizeDetailed(raw)
	}
	return normalizeSummary(raw)
}

// FromJSON decodes a single raw order payload and normalizes it.
func FromJSON(data []byte) (order.Record, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return order.Record{}, fmt.Errorf("decode order payload: %w", err)
	}
	return Normalize(raw), nil
}

func normalizeDetailed(raw map[string]interface{}) order.Record {
	rec := normalizeCommon(raw)

	rec.CustomerName = pickString(raw, order.Unknown, "customer.name", "customerName")
	rec.CustomerEmail = pickString(raw, order.Unknown, "customer.email", "customerEmail")
	rec.CustomerPhone = pickString(raw, order.Unknown, "customer.phoneNumber", "customer.phone", "customerPhone")

	if addr, ok := childMap(raw, "customerAddress"); ok {
		rec.Address = normalizeAddress(addr)
	} else {
		rec.Address = splitNameAddress(rec.CustomerName)
	}

	for _, itemRaw := range childList(raw, "orderItems") {
		rec.Items = append(rec.Items, normalizeItem(itemRaw))
	}
	for _, payRaw := range firstList(raw, "payments", "paymentDetails") {
		rec.Payments = append(rec.Payments, normalizePayment(payRaw))
	}

	rec.Subtotal = pickAmount(raw, "subtotal", "subTotal")
	rec.TaxAmount = pickAmount(raw, "taxAmount", "tax")
	rec.ShippingCost = pickAmount(raw, "shippingCost", "shippingFee")
	rec.DiscountAmount = pickAmount(raw, "discountAmount", "discount")
	rec.Total = resolveTotal(raw, rec)

	return rec
}

func normalizeSummary(raw map[string]interface{}) order.Record {
	rec := normalizeCommon(raw)

	rec.CustomerName = pickString(raw, order.Unknown, "customerName", "customer.name")
	rec.CustomerEmail = pickString(raw, order.Unknown, "customerEmail", "customer.email")
	rec.CustomerPhone = pickString(raw, order.Unknown, "customerPhone", "customer.phoneNumber")
	rec.Address = splitNameAddress(rec.CustomerName)

	for _, itemRaw := range childList(raw, "items") {
		rec.Items = append(rec.Items, normalizeItem(itemRaw))
	}

	rec.Subtotal = pickAmount(raw, "subtotal", "subTotal")
	rec.TaxAmount = pickAmount(raw, "taxAmount", "tax")
	rec.ShippingCost = pickAmount(raw, "shippingCost", "shippingFee")
	rec.DiscountAmount = pickAmount(raw, "discountAmount", "discount")
	rec.Total = resolveTotal(raw, rec)

	return rec
}

func normalizeCommon(raw map[string]interface{}) order.Record {
	rec := order.Record{
		ID:          pickID(raw, "id", "orderId"),
		OrderNumber: pickString(raw, "", "orderNumber", "orderNo"),
		Status:      pickStatus(raw, "status", "orderStatus"),
		IsCancelled: pickBool(raw, "isCancelled"),
		IsDelivered: pickBool(raw, "isDelivered"),
		IsShipped:   pickBool(raw, "isShipped"),
		CancelledAt: pickString(raw, "", "cancelledAt"),
		DeliveredAt: pickString(raw, "", "deliveredAt"),
		ShippedAt:   pickString(raw, "", "shippedAt"),
	}
	rec.Date = pickDate(raw, "orderDate", "createdAt", "date")
	return rec
}

func normalizeAddress(raw map[string]interface{}) order.Address {
	return order.Address{
		FirstName:       pickString(raw, order.Unknown, "firstName"),
		LastName:        pickString(raw, order.Unknown, "lastName"),
		Line:            pickString(raw, "", "address", "addressLine"),
		City:            pickString(raw, "", "city"),
		State:           pickString(raw, "", "state"),
		ZipCode:         pickString(raw, "", "zipCode", "postalCode"),
		Phone:           pickString(raw, "", "phoneNumber", "phone"),
		Country:         pickString(raw, "", "country"),
		ApartmentSuite:  pickString(raw, "", "apartmentSuite", "apartment"),
		AddressType:     pickString(raw, "", "addressType"),
		AdditionalNotes: pickString(raw, "", "additionalNotes", "notes"),
	}
}

func normalizeItem(raw map[string]interface{}) order.Item {
	item := order.Item{
		Name:               pickString(raw, order.Unknown, "productName", "product.name", "name"),
		Quantity:           pickInt(raw, "quantity", "qty"),
		Price:              pickAmount(raw, "price", "unitPrice"),
		Size:               pickString(raw, "", "size"),
		Color:              pickString(raw, "", "color"),
		DiscountPercentage: pickAmount(raw, "discountPercentage"),
		OriginalPrice:      pickAmount(raw, "originalPrice", "product.price"),
		// product image before the generic item-level one
		Image: pickString(raw, "", "product.mainImageUrl", "image"),
	}
	item.TotalPrice = pickAmount(raw, "totalPrice", "total")
	if item.TotalPrice == 0 {
		item.TotalPrice = item.Price * float64(item.Quantity)
	}
	return item
}

func normalizePayment(raw map[string]interface{}) order.Payment {
	return order.Payment{
		Amount: pickAmount(raw, "amount", "paymentAmount"),
		Date:   pickString(raw, "", "paymentDate", "date", "createdAt"),
		Status: pickStatus(raw, "status", "paymentStatus"),
		Method: pickString(raw, order.Unknown, "paymentMethod", "method"),
	}
}

// resolveTotal honors the financial invariant: an explicit total wins, then
// the breakdown sum, then the line-item fallback.
func resolveTotal(raw map[string]interface{}, rec order.Record) float64 {
	if v, ok := first(raw, "total", "totalAmount", "finalAmount"); ok {
		return order.Amount(v)
	}
	if _, ok := first(raw, "subtotal", "subTotal", "taxAmount", "tax", "shippingCost", "shippingFee", "discountAmount", "discount"); ok {
		return rec.Subtotal + rec.TaxAmount + rec.ShippingCost - rec.DiscountAmount
	}
	return rec.ItemsTotal()
}

// splitNameAddress derives a minimal address from a flat customer name, the
// way the summary shape expects.
func splitNameAddress(name string) order.Address {
	addr := order.Address{FirstName: order.Unknown, LastName: order.Unknown}
	if name == "" || name == order.Unknown {
		return addr
	}
	parts := strings.SplitN(name, " ", 2)
	addr.FirstName = parts[0]
	if len(parts) == 2 && parts[1] != "" {
		addr.LastName = parts[1]
	}
	return addr
}

/* ================= candidate extractors ================= */

// dig walks a dotted path through nested maps. Any missing or null step ends
// the walk.
func dig(raw map[string]interface{}, path string) (interface{}, bool) {
	keys := strings.Split(path, ".")
	cur := raw
	for i, key := range keys {
		v, ok := cur[key]
		if !ok || v == nil {
			return nil, false
		}
		if i == len(keys)-1 {
			return v, true
		}
		next, ok := v.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// first tries candidate paths in priority order and returns the first defined
// value. The order is part of the mapping contract.
func first(raw map[string]interface{}, paths ...string) (interface{}, bool) {
	for _, p := range paths {
		if v, ok := dig(raw, p); ok {
			return v, true
		}
	}
	return nil, false
}

func pickString(raw map[string]interface{}, def string, paths ...string) string {
	if v, ok := first(raw, paths...); ok {
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			return formatNumber(t)
		case bool:
			return strconv.FormatBool(t)
		}
	}
	return def
}

func pickAmount(raw map[string]interface{}, paths ...string) float64 {
	if v, ok := first(raw, paths...); ok {
		return order.Amount(v)
	}
	return 0
}

func pickInt(raw map[string]interface{}, paths ...string) int {
	return int(pickAmount(raw, paths...))
}

func pickBool(raw map[string]interface{}, paths ...string) bool {
	if v, ok := first(raw, paths...); ok {
		if b, isBool := v.(bool); isBool {
			return b
		}
	}
	return false
}

func pickStatus(raw map[string]interface{}, paths ...string) order.Status {
	if v, ok := first(raw, paths...); ok {
		return order.StatusFromRaw(v)
	}
	return order.Status{}
}

func pickID(raw map[string]interface{}, paths ...string) string {
	if v, ok := first(raw, paths...); ok {
		switch t := v.(type) {
		case string:
			return t
		case float64:
			return formatNumber(t)
		}
	}
	return ""
}

// pickDate defaults to the current time when the upstream sent nothing, and
// to the zero time when it sent something unparseable (sorts as oldest).
func pickDate(raw map[string]interface{}, paths ...string) time.Time {
	v, ok := first(raw, paths...)
	if !ok {
		return time.Now().UTC()
	}
	s, isString := v.(string)
	if !isString {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func childMap(raw map[string]interface{}, path string) (map[string]interface{}, bool) {
	if v, ok := dig(raw, path); ok {
		if m, isMap := v.(map[string]interface{}); isMap {
			return m, true
		}
	}
	return nil, false
}

func childList(raw map[string]interface{}, path string) []map[string]interface{} {
	v, ok := dig(raw, path)
	if !ok {
		return nil
	}
	list, isList := v.([]interface{})
	if !isList {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(list))
	for _, el := range list {
		if m, isMap := el.(map[string]interface{}); isMap {
			out = append(out, m)
		}
	}
	return out
}

func firstList(raw map[string]interface{}, paths ...string) []map[string]interface{} {
	for _, p := range paths {
		if list := childList(raw, p); list != nil {
			return list
		}
	}
	return nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
