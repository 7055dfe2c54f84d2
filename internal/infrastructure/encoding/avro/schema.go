package avro

// OrderRecordSchema is the Avro schema for normalized order records.
// The normalizer guarantees a value for every scalar field, so most fields
// use plain types. Only the lifecycle timestamps keep "union" types
// ["null", "string"]: they are genuinely absent until the order reaches
// that state.
const OrderRecordSchema = `{
	"type": "record",
	"name": "OrderRecord",
	"namespace": "com.orderdesk.order",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "order_number", "type": "string", "default": ""},
		{"name": "date", "type": "string"},
		{"name": "status", "type": "string"},
		{"name": "badge", "type": "string"},

		{"name": "customer_name", "type": "string"},
		{"name": "customer_email", "type": "string"},
		{"name": "customer_phone", "type": "string"},

		{"name": "address", "type": {
			"type": "record",
			"name": "OrderAddress",
			"fields": [
				{"name": "first_name", "type": "string"},
				{"name": "last_name", "type": "string"},
				{"name": "line", "type": "string"},
				{"name": "city", "type": "string"},
				{"name": "state", "type": "string"},
				{"name": "zip_code", "type": "string"},
				{"name": "phone", "type": "string"},
				{"name": "country", "type": "string"},
				{"name": "apartment_suite", "type": "string"},
				{"name": "address_type", "type": "string"},
				{"name": "additional_notes", "type": "string"}
			]
		}},

		{"name": "items", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "OrderItem",
				"fields": [
					{"name": "name", "type": "string"},
					{"name": "quantity", "type": "long"},
					{"name": "price", "type": "double"},
					{"name": "total_price", "type": "double"},
					{"name": "size", "type": "string", "default": ""},
					{"name": "color", "type": "string", "default": ""},
					{"name": "discount_percentage", "type": "double", "default": 0},
					{"name": "original_price", "type": "double", "default": 0},
					{"name": "image", "type": "string", "default": ""}
				]
			}
		}},

		{"name": "payments", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "OrderPayment",
				"fields": [
					{"name": "amount", "type": "double"},
					{"name": "date", "type": "string"},
					{"name": "status", "type": "string"},
					{"name": "method", "type": "string"}
				]
			}
		}},

		{"name": "subtotal", "type": "double"},
		{"name": "tax_amount", "type": "double"},
		{"name": "shipping_cost", "type": "double"},
		{"name": "discount_amount", "type": "double"},
		{"name": "total", "type": "double"},

		{"name": "is_cancelled", "type": "boolean"},
		{"name": "is_delivered", "type": "boolean"},
		{"name": "is_shipped", "type": "boolean"},
		{"name": "cancelled_at", "type": ["null", "string"], "default": null},
		{"name": "delivered_at", "type": ["null", "string"], "default": null},
		{"name": "shipped_at", "type": ["null", "string"], "default": null}
	]
}`
