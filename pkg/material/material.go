// Package material provides the fixed library of materials available for
// analysis. The values are engineering constants; the library is immutable.
package material

import "sort"

// Material holds the mechanical properties used by the estimator.
// Stress values are MPa, density is kg/m³.
type Material struct {
	Name           string  `json:"name"`
	YieldStrength  float64 `json:"yieldStrength"`  // MPa
	ElasticModulus float64 `json:"elasticModulus"` // MPa (Young's modulus)
	PoissonRatio   float64 `json:"poissonRatio"`
	Density        float64 `json:"density"` // kg/m³
}

// library is keyed by the identifier users pass on the command line.
var library = map[string]Material{
	"aluminum-6061-T6": {
		Name:           "Aluminum 6061-T6",
		YieldStrength:  276,
		ElasticModulus: 68900,
		PoissonRatio:   0.33,
		Density:        2700,
	},
	"steel": {
		Name:           "Steel AISI 304",
		YieldStrength:  215,
		ElasticModulus: 193000,
		PoissonRatio:   0.29,
		Density:        8000,
	},
	"pla": {
		Name:           "PLA",
		YieldStrength:  50,
		ElasticModulus: 3500,
		PoissonRatio:   0.36,
		Density:        1240,
	},
	"petg": {
		Name:           "PETG",
		YieldStrength:  28,
		ElasticModulus: 2100,
		PoissonRatio:   0.37,
		Density:        1270,
	},
	"abs": {
		Name:           "ABS",
		YieldStrength:  40,
		ElasticModulus: 2300,
		PoissonRatio:   0.35,
		Density:        1050,
	},
}

// Lookup returns the material registered under key, if any.
func Lookup(key string) (Material, bool) {
	m, ok := library[key]
	return m, ok
}

// Keys returns all library keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(library))
	for k := range library {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns all materials ordered by key.
func All() []Material {
	mats := make([]Material, 0, len(library))
	for _, k := range Keys() {
		mats = append(mats, library[k])
	}
	return mats
}
