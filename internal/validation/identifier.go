// Package validation holds the acceptance rules of the contractor form: the
// identifier format per contractor type and the photo requirements.
package validation

import (
	"regexp"

	"github.com/nurpe/contractor-form/internal/model"
)

var (
	peselPattern = regexp.MustCompile(`^[0-9]{11}$`)
	nipPattern   = regexp.MustCompile(`^[0-9]{10}$`)
)

// ValidateIDNumber checks the identifier length and character class for the
// given contractor type. Checksum digits are not verified.
func ValidateIDNumber(idNumber string, t model.ContractorType) bool {
	if t == model.ContractorTypePerson {
		return peselPattern.MatchString(idNumber)
	}
	return nipPattern.MatchString(idNumber)
}
