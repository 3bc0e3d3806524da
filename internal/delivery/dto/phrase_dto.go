package dto

type PhraseResponse struct {
	ID      uint   `json:"id"`
	TcaType string `json:"tca_type"`
	Phrase  string `json:"phrase"`
}
