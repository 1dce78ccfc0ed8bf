package adminapi

import "github.com/dmitrijs2005/factkeeper/internal/models"

type Empty struct{}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type ChangePasswordRequest struct {
	NewPassword  string `json:"newPassword"`
	Confirmation string `json:"confirmation"`
}

// IDRequest names one fact or submission.
type IDRequest struct {
	ID string `json:"id"`
}

type ListPendingResponse struct {
	Submissions []models.SubmittedFact `json:"submissions"`
}

// ListFactsRequest filters by exact category, or by search query when Query
// is set. Both empty lists everything.
type ListFactsRequest struct {
	Category string `json:"category,omitempty"`
	Query    string `json:"query,omitempty"`
}

type ListFactsResponse struct {
	Facts []models.Fact `json:"facts"`
}

type CreateFactRequest struct {
	Fact models.FactInput `json:"fact"`
}

type UpdateFactRequest struct {
	ID    string           `json:"id"`
	Patch models.FactPatch `json:"patch"`
}

type FactResponse struct {
	Fact models.Fact `json:"fact"`
}

type ImportFactsRequest struct {
	Facts []models.Fact `json:"facts"`
}

type ImportFactsResponse struct {
	Count int `json:"count"`
}

type BackupResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type PingResponse struct {
	Status string `json:"status"`
}
