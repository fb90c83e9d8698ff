package turnover

import "unicode/utf16"

const (
	MinRate     = 5
	MaxRate     = 25
	DefaultRate = 12
)

// Estimator yields an illustrative yearly turnover percentage for a company.
type Estimator interface {
	Estimate(company string) int
}

// HashEstimator derives the rate from a 31-multiplier rolling hash over the UTF-16 code
// units of the name, wrapping at 32 bits. It is not a statistic.
type HashEstimator struct{}

func (HashEstimator) Estimate(company string) int {
	if company == "" {
		return DefaultRate
	}

	var h int32
	for _, u := range utf16.Encode([]rune(company)) {
		h = h*31 + int32(u)
	}

	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return MinRate + int(abs%int64(MaxRate-MinRate+1))
}
