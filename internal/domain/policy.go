package domain

// PolicyTag is the discriminator persisted for a price policy. Policies are
// stateless, so the tag is the only thing worth storing.
type PolicyTag string

const (
	PolicyTagStandard PolicyTag = "Standard"
	PolicyTagStudent  PolicyTag = "Student"
)

// PricePolicy computes the cost of a rental from the item's hourly base
// price and the elapsed fractional hours. Implementations are stateless and
// safe to share across rentals.
type PricePolicy interface {
	Price(basePerHour, hours float64) float64
	Tag() PolicyTag
	// DisplayName is the human-readable policy name.
	DisplayName() string
}

type StandardPolicy struct{}

func (StandardPolicy) Price(basePerHour, hours float64) float64 {
	return basePerHour * hours
}

func (StandardPolicy) Tag() PolicyTag { return PolicyTagStandard }

func (StandardPolicy) DisplayName() string { return "Standard" }

// StudentPolicy gives a 20% discount on the total.
type StudentPolicy struct{}

const studentDiscountRate = 0.8

func (StudentPolicy) Price(basePerHour, hours float64) float64 {
	return basePerHour * hours * studentDiscountRate
}

func (StudentPolicy) Tag() PolicyTag { return PolicyTagStudent }

func (StudentPolicy) DisplayName() string { return "Student (20% rabatt)" }

// PolicyFromTag resolves a persisted tag to a policy. Unrecognized or empty
// tags fall back to the standard policy: losing policy identity is
// non-destructive, so decoding stays lenient here.
func PolicyFromTag(tag PolicyTag) PricePolicy {
	if tag == PolicyTagStudent {
		return StudentPolicy{}
	}
	return StandardPolicy{}
}
