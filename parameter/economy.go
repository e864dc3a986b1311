package parameter

// Crypto mine
const (
	// CryptoRateDivisorFloat: rate = sqrt(deposit) / divisor
	CryptoRateDivisorFloat = 10.0

	// CryptoMinDurationFloat floors the conversion window (seconds)
	CryptoMinDurationFloat = 10.0

	// CryptoDurationLogFactorFloat: duration = ln(deposit+1) * factor
	CryptoDurationLogFactorFloat = 30.0
)

// Lab
const (
	// LabSpeedDivisorFloat: speed = sqrt(deposited) / divisor
	LabSpeedDivisorFloat = 5.0

	// LabBreachThresholdFloat is the progress needed for a breach
	LabBreachThresholdFloat = 1000.0

	// LabBreachPrestigeFloat is granted per breach
	LabBreachPrestigeFloat = 250.0
)

// LabAnomalySpeedFloat is added to lab speed per purchased anomaly level
const LabAnomalySpeedFloat = 0.25
