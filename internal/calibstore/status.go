package calibstore

import (
	"fmt"
	"strings"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
)

// PrintStoreStatus prints calibration store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	if status.Location != "" {
		fmt.Printf("Location: %s\n", status.Location)
	}
	if status.Backend == schema.NoneBackend {
		return
	}
	fmt.Printf("Calibration Versions: %s\n", formatVersions(status.CalibrationVersions))
	fmt.Printf("Norm Versions: %s\n", formatVersions(status.NormVersions))
	fmt.Printf("Design Versions: %s\n", formatVersions(status.DesignVersions))
	fmt.Printf("Stored Profiles: %d\n", status.ProfileCount)
}

func formatVersions(versions []string) string {
	if len(versions) == 0 {
		return "(none)"
	}
	return strings.Join(versions, ", ")
}
