// Package services holds the quote pricing core: feature selection,
// material attachment, totals composition and quote finalization.
package services

import (
	"fmt"
	"time"
)

// Unit is the measurement unit a garden feature is sized in.
type Unit string

const (
	UnitSQM   Unit = "SQM"   // square metres (areas: patio, turf)
	UnitMetre Unit = "METRE" // linear metres (fencing, pathways)
	UnitCount Unit = "UNIT"  // discrete count (pergola, fire pit)
)

// AllUnits lists every valid unit, in display order.
var AllUnits = []Unit{UnitSQM, UnitMetre, UnitCount}

// ValidUnit reports whether u is a recognised measurement unit.
func ValidUnit(u Unit) bool {
	for _, known := range AllUnits {
		if u == known {
			return true
		}
	}
	return false
}

// FeatureType tags a garden feature kind. Standard types come from the fixed
// table below; user-defined types carry a "CUSTOM_" prefix.
type FeatureType string

const (
	FeaturePatio        FeatureType = "PATIO"
	FeatureTurf         FeatureType = "TURF"
	FeatureDecking      FeatureType = "DECKING"
	FeaturePergola      FeatureType = "PERGOLA"
	FeatureFencing      FeatureType = "FENCING"
	FeatureRaisedBed    FeatureType = "RAISED_BED"
	FeatureLighting     FeatureType = "LIGHTING"
	FeatureWaterFeature FeatureType = "WATER_FEATURE"
	FeaturePathway      FeatureType = "PATHWAY"
	FeaturePlantingBed  FeatureType = "PLANTING_BED"
	FeatureGravelArea   FeatureType = "GRAVEL_AREA"
	FeatureFirePit      FeatureType = "FIRE_PIT"
)

// FeatureTypeInfo describes a feature kind: its display label and the unit
// its size is measured in. The unit is fixed per type.
type FeatureTypeInfo struct {
	Label string
	Unit  Unit
}

// standardFeatureTypes is the fixed catalog of built-in garden features.
var standardFeatureTypes = map[FeatureType]FeatureTypeInfo{
	FeaturePatio:        {Label: "Patio", Unit: UnitSQM},
	FeatureTurf:         {Label: "Turf / Lawn", Unit: UnitSQM},
	FeatureDecking:      {Label: "Decking", Unit: UnitSQM},
	FeaturePergola:      {Label: "Pergola", Unit: UnitCount},
	FeatureFencing:      {Label: "Fencing", Unit: UnitMetre},
	FeatureRaisedBed:    {Label: "Raised Bed", Unit: UnitCount},
	FeatureLighting:     {Label: "Garden Lighting", Unit: UnitCount},
	FeatureWaterFeature: {Label: "Water Feature", Unit: UnitCount},
	FeaturePathway:      {Label: "Pathway", Unit: UnitMetre},
	FeaturePlantingBed:  {Label: "Planting Bed", Unit: UnitSQM},
	FeatureGravelArea:   {Label: "Gravel Area", Unit: UnitSQM},
	FeatureFirePit:      {Label: "Fire Pit", Unit: UnitCount},
}

// StandardFeatureTypes returns the built-in feature types in display order.
func StandardFeatureTypes() []FeatureType {
	return []FeatureType{
		FeaturePatio, FeatureTurf, FeatureDecking, FeaturePergola,
		FeatureFencing, FeatureRaisedBed, FeatureLighting, FeatureWaterFeature,
		FeaturePathway, FeaturePlantingBed, FeatureGravelArea, FeatureFirePit,
	}
}

// StandardFeatureTypeInfo looks up the label and unit of a built-in type.
func StandardFeatureTypeInfo(t FeatureType) (FeatureTypeInfo, bool) {
	info, ok := standardFeatureTypes[t]
	return info, ok
}

const customTypePrefix = "CUSTOM_"

// IsCustomType reports whether t is a user-defined feature type.
func IsCustomType(t FeatureType) bool {
	return len(t) > len(customTypePrefix) && t[:len(customTypePrefix)] == customTypePrefix
}

// newCustomFeatureType mints a custom feature type tag from a timestamp.
func newCustomFeatureType(now time.Time) FeatureType {
	return FeatureType(fmt.Sprintf("%s%d", customTypePrefix, now.UnixMilli()))
}
