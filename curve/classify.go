package curve

import "math"

// Classify tags a sample from its secant slopes to the previous and next samples. Edge samples
// pass the one available slope for both.
func Classify(slopeLeft, slopeRight, slopeThreshold, angleThresholdDegrees float64) Classification {
	if IsUndefined(slopeLeft) || IsUndefined(slopeRight) {
		return ClassificationDiscontinuous
	}

	if math.Max(math.Abs(slopeLeft), math.Abs(slopeRight)) > slopeThreshold {
		return ClassificationDiscontinuous
	}

	angleMismatch := math.Abs(math.Atan(slopeLeft) - math.Atan(slopeRight))
	if angleMismatch > angleThresholdDegrees*math.Pi/180 {
		return ClassificationCusp
	}

	return ClassificationSmooth
}

func classifyAll(xs, ys []float64, classes []Classification, slopeThreshold, angleThresholdDegrees float64) {
	n := len(xs)

	for i := 0; i < n; i++ {
		if IsUndefined(ys[i]) {
			classes[i] = ClassificationDiscontinuous

			continue
		}

		var slopeLeft, slopeRight float64

		switch {
		case i == 0:
			slopeRight = (ys[1] - ys[0]) / (xs[1] - xs[0])
			slopeLeft = slopeRight
		case i == n-1:
			slopeLeft = (ys[i] - ys[i-1]) / (xs[i] - xs[i-1])
			slopeRight = slopeLeft
		default:
			slopeLeft = (ys[i] - ys[i-1]) / (xs[i] - xs[i-1])
			slopeRight = (ys[i+1] - ys[i]) / (xs[i+1] - xs[i])
		}

		classes[i] = Classify(slopeLeft, slopeRight, slopeThreshold, angleThresholdDegrees)
	}
}

// classifyAngles applies only the angle rule. Undefined samples are Discontinuous; a sample next to
// an undefined one uses its other slope for both sides.
func classifyAngles(xs, ys []float64, classes []Classification, angleThresholdDegrees float64) {
	n := len(xs)

	slope := func(i, j int) float64 {
		if i < 0 || j >= n || IsUndefined(ys[i]) || IsUndefined(ys[j]) {
			return Undefined
		}

		return (ys[j] - ys[i]) / (xs[j] - xs[i])
	}

	for i := 0; i < n; i++ {
		if IsUndefined(ys[i]) {
			classes[i] = ClassificationDiscontinuous

			continue
		}

		slopeLeft, slopeRight := slope(i-1, i), slope(i, i+1)

		switch {
		case IsUndefined(slopeLeft) && IsUndefined(slopeRight):
			classes[i] = ClassificationSmooth

			continue
		case IsUndefined(slopeLeft):
			slopeLeft = slopeRight
		case IsUndefined(slopeRight):
			slopeRight = slopeLeft
		}

		classes[i] = Classify(slopeLeft, slopeRight, math.Inf(1), angleThresholdDegrees)
	}
}
