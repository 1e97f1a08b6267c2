package memory

import "strings"

// FactType is the closed set of knowledge categories the extractor produces.
type FactType string

const (
	FactTypePersonal   FactType = "personal"
	FactTypePet        FactType = "pet"
	FactTypeLocation   FactType = "location"
	FactTypeWork       FactType = "work"
	FactTypePreference FactType = "preference"
)

// Well-known fact keys. Pet keys are dynamic, see PetNameKey.
const (
	KeyName         = "name"
	KeyHomeLocation = "home_location"
	KeyCompany      = "company"
	KeyLikes        = "likes"
)

// Fact is a single (type, key, value) datum about a user. The BSON/JSON
// shape must round-trip unchanged through persistence and the HTTP API.
type Fact struct {
	Type      FactType `bson:"type" json:"type"`
	Key       string   `bson:"key" json:"key"`
	Value     string   `bson:"value" json:"value"`
	Timestamp string   `bson:"timestamp" json:"timestamp"`
	UserID    string   `bson:"userId" json:"userId"`
}

// PetNameKey builds the dynamic key for a pet-name fact, e.g. "dog" ->
// "dog_name". The pet word is lower-cased for the key only; the stored
// value keeps its source case.
func PetNameKey(petWord string) string {
	return strings.ToLower(petWord) + "_name"
}

// PetWord recovers the pet type from a pet-name key ("dog_name" -> "dog").
func PetWord(key string) string {
	return strings.TrimSuffix(key, "_name")
}
