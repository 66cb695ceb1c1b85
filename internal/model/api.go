package model

const (
	StatusFailed   = "failed"
	StatusOverride = "override"
)

// FailedRecord describes a CSV row rejected during validation
type FailedRecord struct {
	Code   string `json:"code"`
	Error  string `json:"error"`
	Status string `json:"status"`
}

// OverrideRecord describes an accepted row whose code already existed
type OverrideRecord struct {
	Code   string `json:"code"`
	Status string `json:"status"`
}

// ImportReport is the response body of a successful CSV upload
type ImportReport struct {
	Message         string           `json:"message"`
	TotalRecords    int              `json:"totalRecords"`
	SuccessRecords  int              `json:"successRecords"`
	OverrideRecords int              `json:"overrideRecords"`
	FailedRecords   int              `json:"failedRecords"`
	FailedDetails   []FailedRecord   `json:"failedDetails"`
	OverrideDetails []OverrideRecord `json:"overrideDetails"`
}

// PlaceFilter narrows the list of places
type PlaceFilter struct {
	Country string
	Tag     string
	Limit   int
	Offset  int
}

// PlaceListResponse represents the response for place listing
type PlaceListResponse struct {
	Places []MinPlace `json:"places"`
}

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}
