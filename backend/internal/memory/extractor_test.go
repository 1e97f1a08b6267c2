package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findFact returns the first extracted fact of the given type, if any
func findFact(facts []Fact, factType FactType) (Fact, bool) {
	for _, f := range facts {
		if f.Type == factType {
			return f, true
		}
	}
	return Fact{}, false
}

func TestExtract_PetName_English(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		key      string
		value    string
	}{
		{"possessive", "My dog's name is Duke, remember that", "dog_name", "Duke"},
		{"is named", "my cat is named Whiskers", "cat_name", "Whiskers"},
		{"called", "My hamster is called Peanut", "hamster_name", "Peanut"},
		{"capitalized pet word lowers the key only", "My Parrot is named Rio", "parrot_name", "Rio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := Extract(tt.sentence)
			fact, ok := findFact(facts, FactTypePet)
			require.True(t, ok, "expected a pet fact")
			assert.Equal(t, tt.key, fact.Key)
			assert.Equal(t, tt.value, fact.Value)
		})
	}
}

func TestExtract_PetName_Portuguese(t *testing.T) {
	facts := Extract("Meu cachorro se chama Rex")
	fact, ok := findFact(facts, FactTypePet)
	require.True(t, ok)
	assert.Equal(t, "cachorro_name", fact.Key)
	// Portuguese patterns run on a lower-cased copy of the sentence
	assert.Equal(t, "rex", fact.Value)
}

func TestExtract_Location(t *testing.T) {
	facts := Extract("I live in New York City")
	fact, ok := findFact(facts, FactTypeLocation)
	require.True(t, ok)
	assert.Equal(t, KeyHomeLocation, fact.Key)
	assert.Equal(t, "New York City", fact.Value)

	facts = Extract("Eu moro em São Paulo")
	fact, ok = findFact(facts, FactTypeLocation)
	require.True(t, ok)
	assert.Equal(t, KeyHomeLocation, fact.Key)
	assert.Equal(t, "são paulo", fact.Value)
}

func TestExtract_Work(t *testing.T) {
	tests := []struct {
		sentence string
		value    string
	}{
		{"I work at Acme Labs", "Acme Labs"},
		{"I work for Johnson & Johnson", "Johnson & Johnson"},
		{"eu trabalho na Petrobras", "petrobras"},
	}

	for _, tt := range tests {
		facts := Extract(tt.sentence)
		fact, ok := findFact(facts, FactTypeWork)
		require.True(t, ok, "expected a work fact for %q", tt.sentence)
		assert.Equal(t, KeyCompany, fact.Key)
		assert.Equal(t, tt.value, fact.Value)
	}
}

func TestExtract_PersonalName(t *testing.T) {
	facts := Extract("My name is Alice")
	fact, ok := findFact(facts, FactTypePersonal)
	require.True(t, ok)
	assert.Equal(t, KeyName, fact.Key)
	assert.Equal(t, "Alice", fact.Value)

	facts = Extract("me chamo Maria")
	fact, ok = findFact(facts, FactTypePersonal)
	require.True(t, ok)
	assert.Equal(t, "maria", fact.Value)
}

func TestExtract_PersonalName_ExclusionList(t *testing.T) {
	// "I'm from ..." lexically half-matches the name pattern; the
	// exclusion list keeps "from" out of the personal facts while the
	// location family still fires.
	facts := Extract("I'm from Brazil")
	_, hasName := findFact(facts, FactTypePersonal)
	assert.False(t, hasName, "excluded word must not become a name fact")

	loc, ok := findFact(facts, FactTypeLocation)
	require.True(t, ok)
	assert.Equal(t, "Brazil", loc.Value)

	// Portuguese equivalent: "eu sou de Lisboa" excludes "de"
	facts = Extract("eu sou de Lisboa")
	_, hasName = findFact(facts, FactTypePersonal)
	assert.False(t, hasName)

	loc, ok = findFact(facts, FactTypeLocation)
	require.True(t, ok)
	assert.Equal(t, "lisboa", loc.Value)
}

func TestExtract_Preference(t *testing.T) {
	facts := Extract("I love hiking, photography")
	fact, ok := findFact(facts, FactTypePreference)
	require.True(t, ok)
	assert.Equal(t, KeyLikes, fact.Key)
	assert.Equal(t, "hiking, photography", fact.Value)

	facts = Extract("eu gosto de churrasco")
	fact, ok = findFact(facts, FactTypePreference)
	require.True(t, ok)
	assert.Equal(t, "churrasco", fact.Value)
}

func TestExtract_MultipleFamiliesInOneSentence(t *testing.T) {
	facts := Extract("My cat's name is Whiskers and I live in San Francisco")
	require.Len(t, facts, 2)

	pet, ok := findFact(facts, FactTypePet)
	require.True(t, ok)
	assert.Equal(t, "cat_name", pet.Key)
	assert.Equal(t, "Whiskers", pet.Value)

	loc, ok := findFact(facts, FactTypeLocation)
	require.True(t, ok)
	assert.Equal(t, KeyHomeLocation, loc.Key)
	assert.Equal(t, "San Francisco", loc.Value)
}

func TestExtract_GlobalMatchingWithinOneFamily(t *testing.T) {
	facts := Extract("My dog is named Rex and my cat is named Tom")

	var pets []Fact
	for _, f := range facts {
		if f.Type == FactTypePet {
			pets = append(pets, f)
		}
	}
	require.Len(t, pets, 2)
	assert.Equal(t, "dog_name", pets[0].Key)
	assert.Equal(t, "Rex", pets[0].Value)
	assert.Equal(t, "cat_name", pets[1].Key)
	assert.Equal(t, "Tom", pets[1].Value)
}

func TestExtract_OverlappingPatternsProduceMultipleFacts(t *testing.T) {
	// The pet pattern's "my <word> is <word>" branch also matches
	// "My name is Alice". Families run independently, so both facts are
	// produced; this mirrors the long-standing extraction behavior.
	facts := Extract("My name is Alice")
	require.Len(t, facts, 2)

	pet, ok := findFact(facts, FactTypePet)
	require.True(t, ok)
	assert.Equal(t, "name_name", pet.Key)
	assert.Equal(t, "Alice", pet.Value)

	personal, ok := findFact(facts, FactTypePersonal)
	require.True(t, ok)
	assert.Equal(t, "Alice", personal.Value)
}

func TestExtract_NoMatch(t *testing.T) {
	assert.Empty(t, Extract("What is the weather today?"))
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("qual é a previsão do tempo?"))
}

func TestExtract_LeavesUserIDAndTimestampEmpty(t *testing.T) {
	facts := Extract("I live in Boston")
	require.Len(t, facts, 1)
	assert.Empty(t, facts[0].UserID)
	assert.Empty(t, facts[0].Timestamp)
}
