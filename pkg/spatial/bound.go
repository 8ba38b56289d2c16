package spatial

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ParseBound reads "minLat,minLon,maxLat,maxLon".
func ParseBound(s string) (orb.Bound, error) {
	var minLat, minLon, maxLat, maxLon float64
	if _, err := fmt.Sscanf(s, "%f,%f,%f,%f", &minLat, &minLon, &maxLat, &maxLon); err != nil {
		return orb.Bound{}, errors.Wrapf(err, "bbox %q (expected minLat,minLon,maxLat,maxLon)", s)
	}
	if minLat > maxLat || minLon > maxLon {
		return orb.Bound{}, errors.Errorf("bbox %q: min exceeds max", s)
	}
	return orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}}, nil
}
