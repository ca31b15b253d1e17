package util

// MapRange transforms value from the range [fromMin, fromMax] into [toMin, toMax].
// Values outside the first range are extrapolated.
func MapRange(value, fromMin, fromMax, toMin, toMax float64) (float64, error) {
	if fromMax == 0 || toMax == 0 {
		return 0, ErrDivisionByZero
	}
	if fromMin == 0 && toMin == 0 {
		return value * (toMax / fromMax), nil
	}
	if fromMax == fromMin {
		return 0, ErrDivisionByZero
	}
	return (value-fromMin)*((toMax-toMin)/(fromMax-fromMin)) + toMin, nil
}
