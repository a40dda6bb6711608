// file: model/request.go

package model

// CreateCustomerRequest defines the payload for creating a customer record.
// Field names follow the API names of the CRM Customers module, so the struct
// marshals directly into the record body sent to Zoho.
type CreateCustomerRequest struct {
	Name           string `json:"Name" validate:"required"`
	Phone          string `json:"Phone,omitempty"`
	Email          string `json:"Email,omitempty" validate:"omitempty,email"`
	CustomerID     string `json:"Customer_ID,omitempty"`
	CartID         int    `json:"Cart_ID,omitempty"`
	OrderDate      string `json:"Order_Date,omitempty"`
	Address        string `json:"Address,omitempty"`
	KnownLanguages string `json:"Known_languages,omitempty"`
	OrderStatus    string `json:"Order_Status,omitempty"`
}

// Lookup references an existing CRM record by id.
type Lookup struct {
	ID string `json:"id"`
}

// CreateOrderRequest defines the payload for creating a record in the
// Cart_Orders module.
type CreateOrderRequest struct {
	Name              string  `json:"Name" validate:"required"`
	OrderDate         string  `json:"Order_Date,omitempty"`
	TotalAmount       float64 `json:"Total_Amount,omitempty" validate:"omitempty,gt=0"`
	PrescriptionAdded bool    `json:"Prescription_Added,omitempty"`
	ItemsInCart       string  `json:"Items_in_Cart,omitempty"`
	CartID            int     `json:"Cart_ID_1,omitempty"`
	Lookup            *Lookup `json:"Lookup,omitempty"`
}
