package output

// DefaultAssumptions lists the modeling rules rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Revaluation applies from 2543; earlier years are carried at nominal wage",
	"Discount factor averages the trailing four years of compounded indices",
	"Track 2 months are valued at the secondary ceiling (4,800 in 2569, indexed yearly)",
	"Accrual: 20% for the first 180 months, plus 0.125% per additional month",
	"Legacy formula: average of the final 60 contribution months",
	"Years beyond the reference table grow ceilings by 4% per year",
}
