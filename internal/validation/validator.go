package validation

import (
	"fmt"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with struct-level checks registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(createOrderStructValidation, CreateOrderRequest{})
	return v
}

// createOrderStructValidation rejects checkouts that list the same product
// twice; quantities must be merged client-side so the stock reservation
// runs once per product.
func createOrderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateOrderRequest)

	seen := make(map[uint]bool, len(req.Products))
	for _, line := range req.Products {
		if seen[line.ProductID] {
			sl.ReportError(req.Products, "products", "Products", "unique_products",
				fmt.Sprintf("product %d listed more than once", line.ProductID))
			return
		}
		seen[line.ProductID] = true
	}
}
