// Package mapgen renders geocoded license records as a self-contained
// interactive Leaflet map.
package mapgen

import (
	"strings"
)

// Hex colors per license category and market type.
var markerColors = map[string]string{
	"GROWER_AU":       "#2D5016",
	"GROWER_MED":      "#7CB342",
	"PROCESSOR_AU":    "#1565C0",
	"PROCESSOR_MED":   "#42A5F5",
	"RETAILER_AU":     "#6A1B9A",
	"RETAILER_MED":    "#AB47BC",
	"TRANSPORTER_AU":  "#E65100",
	"TRANSPORTER_MED": "#FF9800",
}

const inactiveColor = "#BDBDBD"

// MarkerColor picks the marker color for a license. Inactive licenses are
// greyed out regardless of type.
func MarkerColor(category, market string, active bool) string {
	if !active {
		return inactiveColor
	}
	key := strings.ToUpper(category) + "_" + strings.ToUpper(market)
	if c, ok := markerColors[key]; ok {
		return c
	}
	return inactiveColor
}

// MarkerIcon picks the FontAwesome icon name for a license.
func MarkerIcon(category, class string) string {
	switch category {
	case "Grower":
		if class == "Microbusiness" {
			return "seedling"
		}
		return "leaf"
	case "Processor":
		return "flask"
	case "Retailer":
		return "shopping-cart"
	case "Transporter":
		return "truck"
	default:
		return "circle"
	}
}

// IsActiveStatus reports whether a registry status string counts as active.
// "Active - Late Renewal" deliberately does not.
func IsActiveStatus(status string) bool {
	lower := strings.ToLower(status)
	return strings.Contains(lower, "active") && !strings.Contains(lower, "late")
}

// MarkerOpacity returns the marker opacity for a license status.
func MarkerOpacity(active bool) float64 {
	if active {
		return 1.0
	}
	return 0.6
}
