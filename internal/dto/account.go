package dto

import "github.com/ecclesiahq/church_ledger_app/internal/core/domain"

// AccountResponse is the read shape of a chart-of-accounts row.
type AccountResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// ListAccountsResponse wraps a chart listing.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{Code: a.Code, Name: a.Name, Kind: string(a.Kind)}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
