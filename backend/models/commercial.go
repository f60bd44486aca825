// ABOUTME: Commercial split models decomposing price into book and service fee
// ABOUTME: Book component is capped per program category; GST applies to the fee only

package models

// CommercialLine is the per-student commercial decomposition of one
// program's price: a capped book component, the residual service fee, and
// GST computed on the fee. BookPrice + ServiceFee equals the per-student
// price exactly; GST is additive tax, not drawn from the price.
type CommercialLine struct {
	Program    Program `json:"program"`
	BookPrice  int     `json:"book_price"`
	ServiceFee int     `json:"service_fee"`
	GST        int     `json:"gst"`
}

// CommercialSummary aggregates commercial lines across programs, with each
// line's per-student values multiplied by that program's student count.
type CommercialSummary struct {
	TotalBookCost   int `json:"total_book_cost"`
	TotalServiceFee int `json:"total_service_fee"`
	TotalGST        int `json:"total_gst"`
	TotalPayable    int `json:"total_payable"`
}
