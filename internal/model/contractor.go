package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ContractorType string

const (
	ContractorTypePerson  ContractorType = "Osoba"
	ContractorTypeCompany ContractorType = "Firma"

	DefaultContractorType = ContractorTypePerson
)

// ParseContractorType accepts only the two known types. Matching is exact,
// the values are labels shown to the user.
func ParseContractorType(raw string) (ContractorType, error) {
	switch ContractorType(strings.TrimSpace(raw)) {
	case ContractorTypePerson:
		return ContractorTypePerson, nil
	case ContractorTypeCompany:
		return ContractorTypeCompany, nil
	default:
		return "", fmt.Errorf("unknown contractor type %q", raw)
	}
}

func (t ContractorType) Valid() bool {
	return t == ContractorTypePerson || t == ContractorTypeCompany
}

// IDLabel is the name of the identifier the type expects.
func (t ContractorType) IDLabel() string {
	if t == ContractorTypePerson {
		return "PESEL"
	}
	return "NIP"
}

func (t ContractorType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown contractor type %q", string(t))
	}
	return json.Marshal(string(t))
}

func (t *ContractorType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseContractorType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ContractorData is the flat record edited on the contractor form and sent
// to the save endpoint.
type ContractorData struct {
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Type      ContractorType `json:"type"`
	IDNumber  string         `json:"idNumber"`
	Image     string         `json:"image"`
}

func NewContractorData() ContractorData {
	return ContractorData{Type: DefaultContractorType}
}

type Contractor struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Type      ContractorType
	IDNumber  string
	Image     string
	CreatedBy *uuid.UUID
	CreatedAt time.Time
}

func (c Contractor) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c Contractor) Data() ContractorData {
	return ContractorData{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Type:      c.Type,
		IDNumber:  c.IDNumber,
		Image:     c.Image,
	}
}
