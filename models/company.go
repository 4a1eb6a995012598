package models

import "time"

// Company represents a company profile (empresa)
type Company struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"userId,omitempty"`
	LegalName string    `json:"legalName"`
	TradeName string    `json:"tradeName"`
	CNPJ      string    `json:"cnpj"`
	StateReg  string    `json:"stateRegistration"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CEP       string    `json:"cep"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	UF        string    `json:"uf"`
	LogoRef   *string   `json:"logoRef,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CompanyRequest represents the request body for creating or updating a company
type CompanyRequest struct {
	UserID    *int64 `json:"userId"`
	LegalName string `json:"legalName" validate:"required,max=200"`
	TradeName string `json:"tradeName" validate:"max=200"`
	CNPJ      string `json:"cnpj" validate:"required,cnpj"`
	StateReg  string `json:"stateRegistration" validate:"max=20"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,phone_br"`
	CEP       string `json:"cep" validate:"omitempty,cep"`
	Address   string `json:"address" validate:"max=255"`
	City      string `json:"city" validate:"max=100"`
	UF        string `json:"uf" validate:"omitempty,len=2"`
}

// Customer represents a customer profile (cliente)
type Customer struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"userId,omitempty"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	CPF       *string   `json:"cpf,omitempty"`
	CompanyID *int64    `json:"companyId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerRequest represents the request body for creating or updating a customer
type CustomerRequest struct {
	UserID    *int64 `json:"userId"`
	FullName  string `json:"fullName" validate:"required,max=200"`
	Phone     string `json:"phone" validate:"omitempty,phone_br"`
	CPF       string `json:"cpf" validate:"omitempty,cpf"`
	CompanyID *int64 `json:"companyId"`
}

// CompanyDashboard is returned by the company dashboard endpoint
type CompanyDashboard struct {
	Company Company     `json:"company"`
	Catalog CatalogData `json:"catalog"`
}
