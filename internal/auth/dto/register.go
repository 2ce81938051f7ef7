package dto

type RegisterInput struct {
	Pseudo string `json:"pseudo" form:"pseudo"`
	Mdp    string `json:"mdp" form:"mdp"`
	Email  string `json:"eMail" form:"eMail"`
}
