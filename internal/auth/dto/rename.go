package dto

type RenameInput struct {
	Pseudo        string `json:"pseudo" form:"pseudo"`
	NouveauPseudo string `json:"nouveauPseudo" form:"nouveauPseudo"`
}
