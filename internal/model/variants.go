package model

// Variant tags one of the standard compartment topologies.
type Variant string

const (
	SI   Variant = "si"
	SIS  Variant = "sis"
	SIR  Variant = "sir"
	SEIR Variant = "seir"
)

// Variants lists the standard variant tags in canonical order.
func Variants() []Variant {
	return []Variant{SI, SIS, SIR, SEIR}
}

// ParseVariant maps a user-supplied name to a variant tag.
func ParseVariant(name string) (Variant, bool) {
	switch Variant(name) {
	case SI, SIS, SIR, SEIR:
		return Variant(name), true
	}
	return "", false
}

// infection is the standard force-of-infection flow beta*S*I/N out of S. The
// destination differs per variant (I directly, or E when there is a latent
// stage).
func infection(to string) Flow {
	return Flow{
		Name:       "infection",
		From:       "S",
		To:         to,
		Reads:      []string{"S", "I"},
		ParamNames: []string{"beta"},
		Rate: func(t float64, v View, n float64) float64 {
			if n <= 0 {
				return 0
			}
			return v.Param("beta") * v.Compartment("S") * v.Compartment("I") / n
		},
	}
}

// linear is a first-order flow param*From, covering recovery and progression.
func linear(name, from, to, param string) Flow {
	return Flow{
		Name:       name,
		From:       from,
		To:         to,
		Reads:      []string{from},
		ParamNames: []string{param},
		Rate: func(t float64, v View, n float64) float64 {
			return v.Param(param) * v.Compartment(from)
		},
	}
}

var variants = map[Variant]struct {
	compartments []string
	flows        []Flow
}{
	SI: {
		compartments: []string{"S", "I"},
		flows:        []Flow{infection("I")},
	},
	SIS: {
		compartments: []string{"S", "I"},
		flows: []Flow{
			infection("I"),
			linear("recovery", "I", "S", "gamma"),
		},
	},
	SIR: {
		compartments: []string{"S", "I", "R"},
		flows: []Flow{
			infection("I"),
			linear("recovery", "I", "R", "gamma"),
		},
	},
	SEIR: {
		compartments: []string{"S", "E", "I", "R"},
		flows: []Flow{
			infection("E"),
			linear("progression", "E", "I", "sigma"),
			linear("recovery", "I", "R", "gamma"),
		},
	},
}
