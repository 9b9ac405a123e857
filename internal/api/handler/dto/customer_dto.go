package dto

import (
	"library-lending/internal/domain/customer"
	"time"
)

type CustomerResponse struct {
	CustomerID string    `json:"customerId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	CreateDate time.Time `json:"createDate"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	return CustomerResponse{
		CustomerID: formatID(cust.ID),
		Name:       cust.FullName(),
		Email:      cust.Email,
		Phone:      cust.Phone,
		CreateDate: cust.CreatedAt,
	}
}
