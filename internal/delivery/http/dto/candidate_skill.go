package dto

type ReplaceSkillsRequest struct {
	Skills []string `json:"skills"`
}

type SkillsResponse struct {
	Skills []string `json:"skills"`
}
