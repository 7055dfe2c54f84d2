package avro

import (
	"time"

	"orderdesk/internal/domain/order"
)

// recordNative converts a normalized record into the goavro native form.
// goavro requires union values to be wrapped in map[string]interface{}{"type": value}.
func recordNative(rec order.Record) map[string]interface{} {
	items := make([]interface{}, 0, len(rec.Items))
	for _, it := range rec.Items {
		items = append(items, map[string]interface{}{
			"name":                it.Name,
			"quantity":            int64(it.Quantity),
			"price":               it.Price,
			"total_price":         it.TotalPrice,
			"size":                it.Size,
			"color":               it.Color,
			"discount_percentage": it.DiscountPercentage,
			"original_price":      it.OriginalPrice,
			"image":               it.Image,
		})
	}

	payments := make([]interface{}, 0, len(rec.Payments))
	for _, p := range rec.Payments {
		payments = append(payments, map[string]interface{}{
			"amount": p.Amount,
			"date":   p.Date,
			"status": p.Status.Label(),
			"method": p.Method,
		})
	}

	return map[string]interface{}{
		"id":           rec.ID,
		"order_number": rec.OrderNumber,
		"date":         rec.Date.UTC().Format(time.RFC3339),
		"status":       rec.Status.Label(),
		"badge":        rec.Status.Badge(),

		"customer_name":  rec.CustomerName,
		"customer_email": rec.CustomerEmail,
		"customer_phone": rec.CustomerPhone,

		"address": map[string]interface{}{
			"first_name":       rec.Address.FirstName,
			"last_name":        rec.Address.LastName,
			"line":             rec.Address.Line,
			"city":             rec.Address.City,
			"state":            rec.Address.State,
			"zip_code":         rec.Address.ZipCode,
			"phone":            rec.Address.Phone,
			"country":          rec.Address.Country,
			"apartment_suite":  rec.Address.ApartmentSuite,
			"address_type":     rec.Address.AddressType,
			"additional_notes": rec.Address.AdditionalNotes,
		},

		"items":    items,
		"payments": payments,

		"subtotal":        rec.Subtotal,
		"tax_amount":      rec.TaxAmount,
		"shipping_cost":   rec.ShippingCost,
		"discount_amount": rec.DiscountAmount,
		"total":           rec.Total,

		"is_cancelled": rec.IsCancelled,
		"is_delivered": rec.IsDelivered,
		"is_shipped":   rec.IsShipped,
		"cancelled_at": optionalString(rec.CancelledAt),
		"delivered_at": optionalString(rec.DeliveredAt),
		"shipped_at":   optionalString(rec.ShippedAt),
	}
}

func optionalString(s string) interface{} {
	if s == "" {
		return nil
	}
	return map[string]interface{}{"string": s}
}
