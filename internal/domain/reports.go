package domain

// ============================================================
// Report results
// ============================================================

// Period is an inclusive calendar date range (YYYY-MM-DD on both ends).
type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TaxBucket aggregates one direction of GST liability.
// For intra-state supplies the tax is split into equal central and state
// halves; inter-state supplies accrue integrated tax instead.
type TaxBucket struct {
	TaxableValue  float64 `json:"taxable_value"`
	IntegratedTax float64 `json:"integrated_tax"`
	CentralTax    float64 `json:"central_tax"`
	StateTax      float64 `json:"state_tax"`
	TotalTax      float64 `json:"total_tax"`
	TotalGross    float64 `json:"total_gross"`
}

// TaxSummary is the GSTR-3B shape: outward liability, inward credit,
// and the net payable after offsetting the credit.
type TaxSummary struct {
	Outward       TaxBucket `json:"outward"`
	Inward        TaxBucket `json:"inward"`
	NetTaxPayable float64   `json:"net_tax_payable"`
}

// HSNSummaryRow rolls up outward supplies per HSN/SAC code.
type HSNSummaryRow struct {
	HSNCode      string  `json:"hsn_code"`
	Description  string  `json:"description,omitempty"`
	Quantity     float64 `json:"quantity"`
	TaxableValue float64 `json:"taxable_value"`
	TaxAmount    float64 `json:"tax_amount"`
}

// GSTR1Report covers outward supplies for a filing period.
type GSTR1Report struct {
	BusinessID   string          `json:"business_id"`
	GSTIN        string          `json:"gstin,omitempty"`
	Period       Period          `json:"period"`
	Outward      TaxBucket       `json:"outward"`
	InvoiceCount int             `json:"invoice_count"`
	HSNSummary   []HSNSummaryRow `json:"hsn_summary"`
}

// GSTR3BReport is the monthly self-declared summary return.
type GSTR3BReport struct {
	BusinessID string `json:"business_id"`
	GSTIN      string `json:"gstin,omitempty"`
	Period     Period `json:"period"`
	TaxSummary
}

// InvoiceProfit is the per-invoice line of the P&L report.
type InvoiceProfit struct {
	InvoiceID     string  `json:"invoice_id"`
	InvoiceNumber string  `json:"invoice_number"`
	IssueDate     string  `json:"issue_date"`
	PartyName     string  `json:"party_name,omitempty"`
	TaxableValue  float64 `json:"taxable_value"`
	CostTotal     float64 `json:"cost_total"`
	Profit        float64 `json:"profit"`
	MarginPct     float64 `json:"margin_pct"`
}

// ProfitAndLoss aggregates per-invoice profitability for a period.
// GrossProfit already has the taxable value of sales returns deducted.
type ProfitAndLoss struct {
	BusinessID          string          `json:"business_id"`
	Period              Period          `json:"period"`
	PerInvoice          []InvoiceProfit `json:"per_invoice"`
	TotalSales          float64         `json:"total_sales"`
	TotalCOGS           float64         `json:"total_cogs"`
	SalesReturnsTaxable float64         `json:"sales_returns_taxable"`
	GrossProfit         float64         `json:"gross_profit"`
	MarginPct           float64         `json:"margin_pct"`
}

// ProductPerformance ranks one product (or category) group by profit.
type ProductPerformance struct {
	Key       string  `json:"key"` // product ID or category name
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Revenue   float64 `json:"revenue"`
	Cost      float64 `json:"cost"`
	Profit    float64 `json:"profit"`
	MarginPct float64 `json:"margin_pct"`
}

// SalesPerformanceReport carries the ranked groups for a period.
type SalesPerformanceReport struct {
	BusinessID string               `json:"business_id"`
	Period     Period               `json:"period"`
	GroupBy    string               `json:"group_by"` // product, category
	Groups     []ProductPerformance `json:"groups"`
}

// StockRow is one product's contribution to the stock valuation.
type StockRow struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	StockQuantity float64 `json:"stock_quantity"`
	PurchasePrice float64 `json:"purchase_price"`
	StockValue    float64 `json:"stock_value"`
}

// StockSummaryReport values current inventory at cost. The valuation is
// a point-in-time snapshot of current stock, not stock as of a past date.
type StockSummaryReport struct {
	BusinessID    string     `json:"business_id"`
	ProductCount  int        `json:"product_count"`
	TotalQuantity float64    `json:"total_quantity"`
	StockValue    float64    `json:"stock_value"`
	Rows          []StockRow `json:"rows"`
}

// ReportMetrics is the snapshot served by GET /v1/metrics/reports.
type ReportMetrics struct {
	TotalReports int64   `json:"total_reports"`
	ErrorRate    float64 `json:"error_rate"`
	CacheHitRate float64 `json:"cache_hit_rate"`
	Period       string  `json:"period"`
}
