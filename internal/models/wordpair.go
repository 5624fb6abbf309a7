package models

// WordPair is one entry of the word bank: the civilians' word and the
// related word handed to undercovers
type WordPair struct {
	Civilian   string `json:"civilian"`
	Undercover string `json:"undercover"`
}
