package dto

type LoginInput struct {
	Pseudo string `json:"pseudo" form:"pseudo"`
	Mdp    string `json:"mdp" form:"mdp"`
}
