package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePersonID(t *testing.T) {
	cases := []struct {
		raw     string
		want    PersonID
		wantErr bool
	}{
		{raw: "0", want: 0},
		{raw: " 42 ", want: 42},
		{raw: "9007199254740993", want: 9007199254740993},
		{raw: "", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "12abc", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "1.5", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParsePersonID(tc.raw)
		if tc.wantErr {
			require.ErrorIs(t, err, ErrInvalidID, "raw=%q", tc.raw)
			continue
		}
		require.NoError(t, err, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, got)
	}
}

func TestPersonIDJSON(t *testing.T) {
	var body struct {
		A PersonID `json:"a"`
		B PersonID `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 7, "b": "8"}`), &body))
	assert.Equal(t, PersonID(7), body.A)
	assert.Equal(t, PersonID(8), body.B)

	err := json.Unmarshal([]byte(`{"a": "seven"}`), &body)
	require.ErrorIs(t, err, ErrInvalidID)

	err = json.Unmarshal([]byte(`{"a": null}`), &body)
	require.ErrorIs(t, err, ErrInvalidID)

	raw, err := json.Marshal(DeletedMarriage{Spouse1ID: 1, Spouse2ID: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"spouse1Id":"1","spouse2Id":"2"}`, string(raw))
}

func TestValidatePerson(t *testing.T) {
	attrs, err := ValidatePerson(PersonAttributes{Name: "  Ana ", Gender: " Female "})
	require.NoError(t, err)
	assert.Equal(t, "Ana", attrs.Name)
	assert.Equal(t, GenderFemale, attrs.Gender)

	_, err = ValidatePerson(PersonAttributes{Name: "Ana", Gender: "other"})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "gender must be one of")

	_, err = ValidatePerson(PersonAttributes{Gender: GenderMale})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "name is required")

	_, err = ValidatePerson(PersonAttributes{Name: strings.Repeat("x", 201), Gender: GenderMale})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender("MALE")
	require.NoError(t, err)
	assert.Equal(t, GenderMale, g)
	_, err = ParseGender("x")
	assert.True(t, IsClientError(err))
}

func TestPropertiesRoundTrip(t *testing.T) {
	in := PersonAttributes{Name: "Jan", Surname: "Kowalski", BirthDate: "1901-02-03", BirthPlace: "Kraków", AdditionalInfo: "x", Gender: GenderMale}
	assert.Equal(t, in, PersonFromProperties(in.Properties()))
	assert.Equal(t, PersonAttributes{Name: "n"}, PersonFromProperties(map[string]any{"name": "n", "surname": 12}))
}

func TestPersonDTOJSONShape(t *testing.T) {
	dto := PersonDTO{
		ID:               "5",
		PersonAttributes: PersonAttributes{Name: "A", Gender: GenderMale},
		IsMarried:        true,
		Marriages: []Marriage{{
			Spouse:         PersonSummary{ID: "6", PersonAttributes: PersonAttributes{Name: "B", Gender: GenderFemale}},
			Children:       []PersonSummary{},
			SharedChildren: []PersonSummary{},
		}},
	}
	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "5", out["id"])
	assert.Equal(t, "A", out["name"])
	assert.Equal(t, true, out["isMarried"])
	m := out["marriages"].([]any)[0].(map[string]any)
	assert.Equal(t, "6", m["spouse"].(map[string]any)["id"])
	_, hasFathers := m["fathers"]
	assert.False(t, hasFathers)
}
