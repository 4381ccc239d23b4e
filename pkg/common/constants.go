package common

// Screenshot phases accepted by the upload endpoint.
const (
	ScreenshotPhaseBefore = "before"
	ScreenshotPhaseAfter  = "after"
)

// StrategyDescriptions maps strategy tags to the playbook blurb shown on the
// public site.
var StrategyDescriptions = map[string]string{
	"SND":   "Supply & demand continuation after liquidity sweep.",
	"MR":    "Mean reversion after extended move away from value.",
	"BO":    "Breakout & retest strategy with structural confirmation.",
	"SWING": "Swing trading based on higher timeframe structures.",
	"INTRA": "Intraday momentum within specific trading sessions.",
}

// DescribeStrategy returns the playbook description for a tag, or a default
// note for tags that only exist as labels on trades.
func DescribeStrategy(tag string) string {
	if desc, ok := StrategyDescriptions[tag]; ok {
		return desc
	}
	return "No description yet - used as a tag on logged trades."
}
