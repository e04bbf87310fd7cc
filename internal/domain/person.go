package domain

import "strings"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func ParseGender(raw string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(raw))); g {
	case GenderMale, GenderFemale:
		return g, nil
	default:
		return "", ValidationError("gender must be male or female")
	}
}

// PersonAttributes are the stored properties of a Person node.
// Property names match the node properties and the JSON contract.
type PersonAttributes struct {
	Name           string `json:"name" yaml:"name" validate:"required,max=200"`
	Surname        string `json:"surname" yaml:"surname" validate:"max=200"`
	BirthDate      string `json:"birthDate" yaml:"birthDate" validate:"max=64"`
	BirthPlace     string `json:"birthPlace" yaml:"birthPlace" validate:"max=200"`
	AdditionalInfo string `json:"additionalInfo" yaml:"additionalInfo" validate:"max=4000"`
	Gender         Gender `json:"gender" yaml:"gender" validate:"required,oneof=male female"`
}

// Normalize trims whitespace and lower-cases gender.
func (a PersonAttributes) Normalize() PersonAttributes {
	a.Name = strings.TrimSpace(a.Name)
	a.Surname = strings.TrimSpace(a.Surname)
	a.BirthDate = strings.TrimSpace(a.BirthDate)
	a.BirthPlace = strings.TrimSpace(a.BirthPlace)
	a.AdditionalInfo = strings.TrimSpace(a.AdditionalInfo)
	a.Gender = Gender(strings.ToLower(strings.TrimSpace(string(a.Gender))))
	return a
}

// Properties returns the node property map written to the store.
func (a PersonAttributes) Properties() map[string]any {
	return map[string]any{
		"name":           a.Name,
		"surname":        a.Surname,
		"birthDate":      a.BirthDate,
		"birthPlace":     a.BirthPlace,
		"additionalInfo": a.AdditionalInfo,
		"gender":         string(a.Gender),
	}
}

// PersonFromProperties is the inverse of Properties. Missing or non-string
// properties decode as empty strings.
func PersonFromProperties(props map[string]any) PersonAttributes {
	str := func(k string) string {
		if s, ok := props[k].(string); ok {
			return s
		}
		return ""
	}
	return PersonAttributes{
		Name:           str("name"),
		Surname:        str("surname"),
		BirthDate:      str("birthDate"),
		BirthPlace:     str("birthPlace"),
		AdditionalInfo: str("additionalInfo"),
		Gender:         Gender(str("gender")),
	}
}

// PersonNode is a Person together with its store-assigned identity.
type PersonNode struct {
	ID    PersonID
	Attrs PersonAttributes
}

func (n PersonNode) Summary() PersonSummary {
	return PersonSummary{ID: n.ID.String(), PersonAttributes: n.Attrs}
}
