package graph

// Relationship types. SPOUSE_OF is always written as a pair, one edge per direction.
const (
	RelFatherOf = "FATHER_OF"
	RelMotherOf = "MOTHER_OF"
	RelSpouseOf = "SPOUSE_OF"
)

var schemaStatements = []string{
	`CREATE INDEX person_gender IF NOT EXISTS FOR (p:Person) ON (p.gender)`,
}

const cypherCreatePerson = `
CREATE (person:Person $props)
RETURN id(person) AS id, person
`

const cypherCreateParentChild = `
MATCH (mother:Person), (father:Person), (child:Person)
WHERE id(mother) = $motherId AND id(father) = $fatherId AND id(child) = $childId
CREATE (mother)-[:MOTHER_OF]->(child), (father)-[:FATHER_OF]->(child)
RETURN count(child) AS matched
`

const cypherCreateMarriage = `
MATCH (spouse1:Person), (spouse2:Person)
WHERE id(spouse1) = $spouse1Id AND id(spouse2) = $spouse2Id
CREATE (spouse1)-[:SPOUSE_OF]->(spouse2)
CREATE (spouse2)-[:SPOUSE_OF]->(spouse1)
RETURN id(spouse1) AS spouse1Id, spouse1, id(spouse2) AS spouse2Id, spouse2
`

const cypherDeletePerson = `
MATCH (person:Person)
WHERE id(person) = $personId
DETACH DELETE person
RETURN count(*) AS deleted
`

// The undirected pattern with both endpoints pinned matches each directed
// edge of the pair, so both are removed together.
const cypherDeleteMarriage = `
MATCH (spouse1:Person)-[marriage:SPOUSE_OF]-(spouse2:Person)
WHERE id(spouse1) = $spouse1Id AND id(spouse2) = $spouse2Id
DELETE marriage
RETURN count(*) AS deleted
`

// Neighbor sets are projected as {id, node} maps so identities survive
// the trip without relying on deprecated node id fields.
const familyProjection = `
RETURN id(person) AS id, person,
       [s IN spouses | {id: id(s), node: s}] AS spouses,
       [c IN children | {id: id(c), node: c, parentIds: [(p:Person)-[:FATHER_OF|MOTHER_OF]->(c) | id(p)]}] AS children,
       [f IN fathers | {id: id(f), node: f}] AS fathers,
       [m IN mothers | {id: id(m), node: m}] AS mothers
ORDER BY id
`

const fullFanOut = `
OPTIONAL MATCH (person)-[:SPOUSE_OF]-(spouse:Person)
OPTIONAL MATCH (person)-[:FATHER_OF|MOTHER_OF]->(child:Person)
OPTIONAL MATCH (father:Person)-[:FATHER_OF]->(person)
OPTIONAL MATCH (mother:Person)-[:MOTHER_OF]->(person)
WITH person,
     collect(DISTINCT spouse) AS spouses,
     collect(DISTINCT child) AS children,
     collect(DISTINCT father) AS fathers,
     collect(DISTINCT mother) AS mothers
`

const cypherAllPeople = `
MATCH (person:Person)
` + fullFanOut + familyProjection

const cypherPersonFamily = `
MATCH (person:Person)
WHERE id(person) = $personId
` + fullFanOut + familyProjection

// Gender views do not look up the anchor's own parents.
const cypherPeopleByGender = `
MATCH (person:Person {gender: $gender})
OPTIONAL MATCH (person)-[:SPOUSE_OF]-(spouse:Person)
OPTIONAL MATCH (person)-[:FATHER_OF|MOTHER_OF]->(child:Person)
WITH person,
     collect(DISTINCT spouse) AS spouses,
     collect(DISTINCT child) AS children,
     [] AS fathers,
     [] AS mothers
` + familyProjection

const cypherUnmarriedPeople = `
MATCH (person:Person)
WHERE NOT EXISTS { (person)-[:SPOUSE_OF]-() }
WITH person, [] AS spouses, [] AS children, [] AS fathers, [] AS mothers
` + familyProjection

// Only the anchor's own children are collected, never the spouse's.
const cypherMarriedPeople = `
MATCH (person:Person)-[:SPOUSE_OF]-(spouse:Person)
OPTIONAL MATCH (person)-[:FATHER_OF|MOTHER_OF]->(child:Person)
WITH person,
     collect(DISTINCT spouse) AS spouses,
     collect(DISTINCT child) AS children,
     [] AS fathers,
     [] AS mothers
` + familyProjection
