package swpcadapter

import "github.com/auroralab/skywatch/internal/entity"

// ActivityLevelFor maps a Kp index to the viewer-facing activity text.
func ActivityLevelFor(kp float64) string {
	switch {
	case kp >= 7:
		return "Major Storm - Excellent aurora visibility"
	case kp >= 6:
		return "Moderate Storm - Good aurora visibility"
	case kp >= 5:
		return "Minor Storm - Possible aurora visibility"
	case kp >= 4:
		return "Active - Aurora likely visible at high latitudes"
	case kp >= 3:
		return "Quiet - Aurora may be visible overhead at high latitudes"
	default:
		return "Very Quiet - Unlikely aurora activity"
	}
}

// GScaleFor maps a Kp index to the NOAA geomagnetic storm scale.
// A nil Kp means no data.
func GScaleFor(kp *float64) entity.GScale {
	if kp == nil {
		return entity.GScale{Level: "G0", Description: "No storm activity"}
	}

	switch {
	case *kp >= 9:
		return entity.GScale{Level: "G5", Description: "Extreme Geomagnetic Storm"}
	case *kp >= 8:
		return entity.GScale{Level: "G4", Description: "Severe Geomagnetic Storm"}
	case *kp >= 7:
		return entity.GScale{Level: "G3", Description: "Strong Geomagnetic Storm"}
	case *kp >= 6:
		return entity.GScale{Level: "G2", Description: "Moderate Geomagnetic Storm"}
	case *kp >= 5:
		return entity.GScale{Level: "G1", Description: "Minor Geomagnetic Storm"}
	default:
		return entity.GScale{Level: "G0", Description: "No storm activity"}
	}
}
