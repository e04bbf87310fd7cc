package domain

// PersonSummary is a person's attributes flattened next to its stringified identity.
type PersonSummary struct {
	ID string `json:"id"`
	PersonAttributes
}

// Marriage is derived per query, never stored.
//
// Children is the anchor's full children set, repeated on every marriage.
// SharedChildren narrows it to the children whose parents include this spouse.
// Parents is only set by the full listing view; when nil its keys are absent.
type Marriage struct {
	Spouse         PersonSummary   `json:"spouse"`
	Children       []PersonSummary `json:"children"`
	SharedChildren []PersonSummary `json:"sharedChildren"`
	*Parents
}

// Parents holds the anchor's own fathers and mothers.
type Parents struct {
	Fathers []PersonSummary `json:"fathers"`
	Mothers []PersonSummary `json:"mothers"`
}

type PersonDTO struct {
	ID string `json:"id"`
	PersonAttributes
	IsMarried bool       `json:"isMarried"`
	Marriages []Marriage `json:"marriages"`
}

type SpousePair struct {
	Spouse1 PersonSummary `json:"spouse1"`
	Spouse2 PersonSummary `json:"spouse2"`
}

type DeletedMarriage struct {
	Spouse1ID PersonID `json:"spouse1Id"`
	Spouse2ID PersonID `json:"spouse2Id"`
}
