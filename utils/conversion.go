package utils

import "math"

// RoundAmount rounds a money amount to cents.
func RoundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ConvertAmount applies a multiplicative rate and rounds to cents.
func ConvertAmount(amount, rate float64) float64 {
	return RoundAmount(amount * rate)
}
