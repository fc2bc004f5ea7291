package fred

type observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type observationsResponse struct {
	Count        int           `json:"count"`
	Observations []observation `json:"observations"`
}
