package indicator

// Result is the outcome of evaluating a single indicator. Every evaluation
// produces exactly one Result, whatever happens along the way.
type Result struct {
	Code    string `json:"code"`
	Score   int    `json:"score"`
	Message string `json:"message"`
}

// Status classifies the result's score.
func (r Result) Status() StatusValue { return Status(r.Score) }

// Color maps the result's score onto the traffic-light palette.
func (r Result) Color() ColorValue { return Color(r.Score) }

// StatusValue is the pass/fail classification of a score.
type StatusValue string

const (
	StatusFail          StatusValue = "fail"
	StatusIndeterminate StatusValue = "indeterminate"
	StatusPass          StatusValue = "pass"
)

// Status maps a score onto a classification. Scores at 50 or below fail,
// scores from 75 up pass, everything in between is indeterminate.
func Status(score int) StatusValue {
	switch {
	case score <= 50:
		return StatusFail
	case score < 75:
		return StatusIndeterminate
	default:
		return StatusPass
	}
}

// ColorValue is a display hint for a score, as a hex RGB string.
type ColorValue string

const (
	ColorRed   ColorValue = "#E74C3C"
	ColorAmber ColorValue = "#F4D03F"
	ColorGreen ColorValue = "#2ECC71"
)

// Color maps a score onto the palette. Its thresholds are intentionally
// offset from Status: a score of exactly 50 fails but renders amber, and
// scores in (75, 80] pass but still render amber.
func Color(score int) ColorValue {
	switch {
	case score < 50:
		return ColorRed
	case score <= 80:
		return ColorAmber
	default:
		return ColorGreen
	}
}
