package models

type Invoice struct {
	ID         string  `json:"id"`
	ClientName string  `json:"clientName"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
	DueDate    string  `json:"dueDate"`
	IssuedDate string  `json:"issuedDate"`
}

type Expense struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// NewExpense is the request body for adding an expense.
type NewExpense struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type MonthlyFigures struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

type Profitability struct {
	TotalRevenue      float64          `json:"totalRevenue"`
	TotalExpenses     float64          `json:"totalExpenses"`
	NetProfit         float64          `json:"netProfit"`
	RevenueVsExpenses []MonthlyFigures `json:"revenueVsExpenses"`
}

type EggForecast struct {
	Day            string `json:"day"`
	PredictedYield int    `json:"predictedYield"`
}

type Analytics struct {
	EggYieldForecast    []EggForecast `json:"eggYieldForecast"`
	FeedEfficiencyScore float64       `json:"feedEfficiencyScore"`
	MortalityRisk       struct {
		Level  string `json:"level"`
		Reason string `json:"reason"`
	} `json:"mortalityRisk"`
}
