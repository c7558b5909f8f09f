package dto

// EMIRequest is the loan installment calculator payload.
type EMIRequest struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	Months     int     `json:"months"`
}

// Partner is a public partner listing entry.
type Partner struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Review is a public customer review entry.
type Review struct {
	CustomerName string `json:"customer_name"`
	Product      string `json:"product"`
	Rating       int    `json:"rating"`
	Text         string `json:"text"`
}

// FAQ is a public FAQ entry.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
